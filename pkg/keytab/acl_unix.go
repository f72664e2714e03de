//go:build linux || darwin

package keytab

import "os"

// RestrictACL narrows path's permissions to the invoking user (spec.md
// §4.H). On POSIX platforms this is mode 0600.
func RestrictACL(path string) error {
	if err := os.Chmod(path, 0o600); err != nil {
		return newIOError(path, err)
	}
	return nil
}
