package flock

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDiscipline is returned when parsing a discipline name fails.
var ErrUnknownDiscipline = errors.New("unknown lock discipline")

// Discipline selects which advisory-locking primitive guards a descriptor.
// The zero value is Record.
type Discipline int

const (
	// Record is an fcntl(2) whole-file record lock.
	Record Discipline = iota
	// WholeFile is a flock(2) lock.
	WholeFile
)

// Names accepted by ParseDiscipline.
const (
	RecordName    = "record"
	WholeFileName = "flock"
)

// String returns the configuration name of the discipline.
func (d Discipline) String() string {
	switch d {
	case Record:
		return RecordName
	case WholeFile:
		return WholeFileName
	default:
		return fmt.Sprintf("discipline(%d)", int(d))
	}
}

// Valid reports whether d is one of the defined disciplines.
func (d Discipline) Valid() bool {
	return d == Record || d == WholeFile
}

// NeedsWrite reports whether an exclusive lock of this discipline requires
// a descriptor opened for writing.
func (d Discipline) NeedsWrite() bool {
	return d == Record
}

// ParseDiscipline converts a configuration name into a Discipline.
// "lockf" and "fcntl" are accepted as aliases for record locks.
func ParseDiscipline(s string) (Discipline, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case RecordName, "lockf", "fcntl", "":
		return Record, nil
	case WholeFileName, "wholefile", "whole-file":
		return WholeFile, nil
	default:
		return Record, fmt.Errorf("%w: %q (want %q or %q)", ErrUnknownDiscipline, s, RecordName, WholeFileName)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Discipline) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDiscipline, int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Discipline) UnmarshalText(text []byte) error {
	parsed, err := ParseDiscipline(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
