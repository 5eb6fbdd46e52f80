// Package host supplies the mk.FileSystem and mk.ShellRunner
// collaborators against the real operating system: the "Host-OS
// compatibility shims" the core spec names as external collaborators
// rather than engine logic.
package host

import (
	"os"
	"time"

	"github.com/dcastro-mk/gomk/mk"
)

// FS implements mk.FileSystem against the local filesystem.
type FS struct{}

// Modtime returns name's modification time, or 0 if it does not
// exist.
func (FS) Modtime(name string) mk.Timestamp {
	st, err := os.Stat(name)
	if err != nil {
		return 0
	}
	return mk.Timestamp(st.ModTime().Unix())
}

// Touch sets name's modification time to now, creating it if absent.
func (FS) Touch(name string) error {
	now := time.Now()
	if err := os.Chtimes(name, now, now); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		f, ferr := os.Create(name)
		if ferr != nil {
			return ferr
		}
		return f.Close()
	}
	return nil
}

// Unlink removes name.
func (FS) Unlink(name string) error {
	return os.Remove(name)
}
