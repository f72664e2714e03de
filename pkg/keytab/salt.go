package keytab

import "strings"

// Compatibility selects the salt-construction policy used when no
// explicit salt is supplied (spec.md §4.B).
type Compatibility int

const (
	CompatMIT Compatibility = iota
	CompatHeimdal
	CompatWindows
)

func (c Compatibility) String() string {
	switch c {
	case CompatMIT:
		return "MIT"
	case CompatHeimdal:
		return "Heimdal"
	case CompatWindows:
		return "Windows"
	default:
		return "unknown"
	}
}

// ParseCompatibility parses "MIT", "Heimdal", or "Windows"
// case-insensitively.
func ParseCompatibility(s string) (Compatibility, bool) {
	switch strings.ToLower(s) {
	case "mit":
		return CompatMIT, true
	case "heimdal":
		return CompatHeimdal, true
	case "windows":
		return CompatWindows, true
	default:
		return 0, false
	}
}

// DefaultSalt constructs the default S2K salt for p under the given
// compatibility policy (spec.md §4.B).
//
// MIT and Heimdal: REALM || join(components, ""), case preserved
// exactly as given. The spec's Open Question #1 notes Heimdal's real
// salt variant is underspecified upstream; this implementation treats
// Heimdal identically to MIT pending a reference test corpus (see
// DESIGN.md).
//
// Windows: realm uppercased; service/host principals have every
// component lowercased; user principals keep SamAccountName case but
// get an uppercased realm; the HOST/<host> computer-account form
// lowercases the host.
func DefaultSalt(p Principal, compat Compatibility) []byte {
	switch compat {
	case CompatWindows:
		return windowsSalt(p)
	default: // CompatMIT, CompatHeimdal
		return mitSalt(p)
	}
}

func mitSalt(p Principal) []byte {
	var sb strings.Builder
	sb.WriteString(p.Realm)
	for _, c := range p.Components {
		sb.WriteString(c)
	}
	return []byte(sb.String())
}

func windowsSalt(p Principal) []byte {
	var sb strings.Builder
	sb.WriteString(strings.ToUpper(p.Realm))

	switch {
	case len(p.Components) == 2 && strings.EqualFold(p.Components[0], "host"):
		// Computer-account service form HOST/<host>: the service token is
		// written as "host" and the host name is lowercased.
		sb.WriteString("host")
		sb.WriteString(strings.ToLower(p.Components[1]))
	case p.IsServiceOrHost():
		for _, c := range p.Components {
			sb.WriteString(strings.ToLower(c))
		}
	default:
		// User principal: SamAccountName case preserved.
		for _, c := range p.Components {
			sb.WriteString(c)
		}
	}
	return []byte(sb.String())
}
