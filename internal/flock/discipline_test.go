package flock_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/advlock/internal/flock"
)

func TestParseDiscipline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    flock.Discipline
		wantErr bool
	}{
		{in: "record", want: flock.Record},
		{in: "RECORD", want: flock.Record},
		{in: "lockf", want: flock.Record},
		{in: "fcntl", want: flock.Record},
		{in: "", want: flock.Record},
		{in: "flock", want: flock.WholeFile},
		{in: " whole-file ", want: flock.WholeFile},
		{in: "shared", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			got, err := flock.ParseDiscipline(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, flock.ErrUnknownDiscipline)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDiscipline_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "record", flock.Record.String())
	assert.Equal(t, "flock", flock.WholeFile.String())
	assert.Equal(t, "discipline(7)", flock.Discipline(7).String())
}

func TestDiscipline_ZeroValueIsRecord(t *testing.T) {
	t.Parallel()

	var d flock.Discipline
	assert.Equal(t, flock.Record, d)
	assert.True(t, d.NeedsWrite())
	assert.False(t, flock.WholeFile.NeedsWrite())
}

func TestDiscipline_JSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Discipline flock.Discipline `json:"discipline"`
	}

	data, err := json.Marshal(payload{Discipline: flock.WholeFile})
	require.NoError(t, err)
	assert.JSONEq(t, `{"discipline":"flock"}`, string(data))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"discipline":"record"}`), &p))
	assert.Equal(t, flock.Record, p.Discipline)

	require.Error(t, json.Unmarshal([]byte(`{"discipline":"bogus"}`), &p))

	_, err = json.Marshal(payload{Discipline: flock.Discipline(5)})
	require.Error(t, err)
}
