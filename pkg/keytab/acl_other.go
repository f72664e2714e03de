//go:build !linux && !darwin

package keytab

// RestrictACL is a no-op on platforms without a POSIX permission model
// wired up here (spec.md §4.H: "on others it is a no-op that returns a
// warning"). The warning is returned as a ProtectionError-kind value
// carrying a descriptive message rather than silently succeeding, so
// callers that check errors don't mistake this for a real restriction.
func RestrictACL(path string) error {
	return newProtectionError(warnACLUnsupported{path: path})
}

type warnACLUnsupported struct {
	path string
}

func (w warnACLUnsupported) Error() string {
	return "restrict_acl is not supported on this platform; " + w.path + " permissions unchanged"
}
