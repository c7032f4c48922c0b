package advisory

import (
	"os"

	lockerrors "github.com/mrz1836/advlock/internal/errors"
	"github.com/mrz1836/advlock/internal/flock"
)

// filePerm is the mode used when CreateIfMissing creates the lock file.
const filePerm os.FileMode = 0o600

// Request is the configuration for one lock attempt.
type Request struct {
	// Path is the file to lock. It must exist unless CreateIfMissing is set.
	Path string

	// Read and Write select the open mode. At least one must be true.
	Read  bool
	Write bool

	// Discipline selects the locking primitive. The zero value is flock.Record.
	Discipline flock.Discipline

	// CreateIfMissing requires that Path does not exist yet; it is created
	// and opened in one atomic step.
	CreateIfMissing bool
}

// Access modes reported by Request.Mode.
const (
	ModeReadWrite = "rw"
	ModeReadOnly  = "r"
	ModeWriteOnly = "w"
)

// Mode returns the short access mode name, or "" if neither read nor write
// was requested.
func (r Request) Mode() string {
	switch {
	case r.Read && r.Write:
		return ModeReadWrite
	case r.Read:
		return ModeReadOnly
	case r.Write:
		return ModeWriteOnly
	default:
		return ""
	}
}

// Validate checks the request without touching the filesystem.
func (r Request) Validate() error {
	if r.Path == "" {
		return lockerrors.Classify(lockerrors.ErrInvalidConfiguration, nil, "lock path is empty")
	}
	if !r.Read && !r.Write {
		return lockerrors.Classify(lockerrors.ErrInvalidConfiguration, nil,
			"at least one of read/write must be requested")
	}
	if !r.Discipline.Valid() {
		return lockerrors.Classify(lockerrors.ErrInvalidConfiguration, nil,
			"unknown discipline %s", r.Discipline)
	}
	if r.Discipline.NeedsWrite() && !r.Write {
		return lockerrors.Classify(lockerrors.ErrInvalidConfiguration, nil,
			"%s locks need a descriptor opened for writing", r.Discipline)
	}
	return nil
}

// openFlags computes the open(2) flags for the request.
func (r Request) openFlags() (int, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}

	var flags int
	switch r.Mode() {
	case ModeReadWrite:
		flags = os.O_RDWR
	case ModeReadOnly:
		flags = os.O_RDONLY
	case ModeWriteOnly:
		flags = os.O_WRONLY
	}

	flags |= noFollow
	if r.CreateIfMissing {
		flags |= os.O_CREATE | os.O_EXCL
	}
	return flags, nil
}
