// Package flock provides the two OS advisory-locking primitives used by
// advlock behind a single closed Discipline type.
//
// Record locks are fcntl(2) whole-file write locks. They work over NFS and
// other network filesystems but need a descriptor opened for writing. On
// Linux the open-file-description variant (F_OFD_SETLK) is used, so two
// descriptors in one process contend the same way two processes do.
//
// Whole-file locks are flock(2) locks. They attach to the open file
// description and work on read-only descriptors, but are unreliable over
// network filesystems.
//
// Every request is exclusive and non-blocking. A descriptor must always be
// unlocked with the discipline it was locked with:
//
//	f, _ := os.OpenFile(path, os.O_RDWR, 0o600)
//	if err := flock.Exclusive(f.Fd(), flock.Record); err != nil {
//	    if flock.IsContention(err) {
//	        // held by someone else
//	    }
//	}
//	defer flock.Unlock(f.Fd(), flock.Record)
package flock
