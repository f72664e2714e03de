package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/Officialstjp/STKeytab-sub001/internal/clock"
	"github.com/Officialstjp/STKeytab-sub001/pkg/keytab"
)

func readKeytabFile(path string) (*keytab.Keytab, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ioErr(path, err)
	}
	return keytab.Read(data)
}

func writeKeytabFile(path string, k *keytab.Keytab, force32BitKvno bool) error {
	data, err := keytab.Write(k, keytab.WriteOptions{
		Force32BitKvno: force32BitKvno,
		Now:            clock.Now,
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return ioErr(path, err)
	}
	return nil
}

// ioErr wraps a plain os error in a *keytab.Error so exitCodeFor can
// classify it consistently with errors that originate inside the
// engine itself.
func ioErr(path string, cause error) error {
	return &keytab.Error{Kind: keytab.ErrKindIO, Path: path, Cause: cause}
}

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

func decodeHexKey(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex key %q: %w", s, err)
	}
	return b, nil
}
