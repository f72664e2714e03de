package keytab

import (
	"strings"
)

// NameType is the Kerberos principal name-type tag (KRB5_NT_*).
type NameType uint32

const (
	NameTypeUnknown NameType = 0
	NameTypePrincipal NameType = 1
	NameTypeSrvInst   NameType = 2
	NameTypeSrvHst    NameType = 3
	NameTypeUID       NameType = 5
)

// Principal is a named Kerberos identity: a realm, an ordered list of
// one or more name components, and a name-type tag.
type Principal struct {
	Realm      string
	Components []string
	NameType   NameType
}

// Classification describes the kind of identity a Principal represents.
type Classification int

const (
	ClassUser Classification = iota
	ClassService
	ClassHost
	ClassComputerAccount
	ClassKrbtgt
)

// NewPrincipal builds a Principal from its parts, defaulting NameType
// the way ParsePrincipal does: PRINCIPAL for single-component names,
// SRV_HST for two-or-more-component service/host names.
func NewPrincipal(realm string, components ...string) (Principal, error) {
	p := Principal{Realm: realm, Components: append([]string(nil), components...)}
	p.NameType = defaultNameType(p.Components)
	if err := p.Validate(); err != nil {
		return Principal{}, err
	}
	return p, nil
}

func defaultNameType(components []string) NameType {
	if len(components) >= 2 {
		return NameTypeSrvHst
	}
	return NameTypePrincipal
}

// Validate checks the non-empty-realm, non-empty-component, no-NUL
// invariants (spec.md §3 invariant 4).
func (p Principal) Validate() error {
	if p.Realm == "" {
		return newInvalidPrincipal("realm must not be empty")
	}
	if strings.ContainsRune(p.Realm, 0) {
		return newInvalidPrincipal("realm must not contain NUL")
	}
	if len(p.Components) == 0 {
		return newInvalidPrincipal("principal must have at least one component")
	}
	for _, c := range p.Components {
		if c == "" {
			return newInvalidPrincipal("component must not be empty")
		}
		if strings.ContainsRune(c, 0) {
			return newInvalidPrincipal("component must not contain NUL")
		}
	}
	return nil
}

// ParsePrincipal parses "c1/c2/...@REALM" into a Principal. The realm
// is isolated by splitting once on the last unescaped '@'; the
// remainder is split on unescaped '/'. Backslash escapes '/', '@', and
// '\' inside components.
func ParsePrincipal(text string) (Principal, error) {
	realmIdx := lastUnescapedIndex(text, '@')
	if realmIdx < 0 {
		return Principal{}, newParseError(int64(len(text)), "missing realm (no unescaped '@')")
	}
	left := text[:realmIdx]
	realm := unescapeComponent(text[realmIdx+1:])

	rawComponents := splitUnescaped(left, '/')
	if len(rawComponents) == 0 || (len(rawComponents) == 1 && rawComponents[0] == "") {
		return Principal{}, newParseError(int64(realmIdx), "missing name components")
	}
	components := make([]string, len(rawComponents))
	for i, rc := range rawComponents {
		components[i] = unescapeComponent(rc)
	}

	p := Principal{Realm: realm, Components: components, NameType: defaultNameType(components)}
	if err := p.Validate(); err != nil {
		return Principal{}, err
	}
	return p, nil
}

// Render renders a Principal back to "c1/c2/...@REALM" textual form,
// re-escaping '/', '@', and '\' inside components.
func (p Principal) Render() string {
	var sb strings.Builder
	for i, c := range p.Components {
		if i > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(escapeComponent(c))
	}
	sb.WriteByte('@')
	sb.WriteString(escapeComponent(p.Realm))
	return sb.String()
}

func (p Principal) String() string { return p.Render() }

// IsComputerAccount reports whether p is a single component ending in
// '$', the Active Directory SAM-account-name convention for machine
// accounts.
func (p Principal) IsComputerAccount() bool {
	return len(p.Components) == 1 && strings.HasSuffix(p.Components[0], "$")
}

// IsKrbtgt reports whether the first component equals "krbtgt"
// case-insensitively.
func (p Principal) IsKrbtgt() bool {
	return len(p.Components) > 0 && strings.EqualFold(p.Components[0], "krbtgt")
}

// wellKnownServiceTokens are first components that mark a principal
// as a service/host identity even when the default name-type heuristic
// (component count) would not already say so.
var wellKnownServiceTokens = map[string]bool{
	"host": true, "HOST": true,
	"http": true, "HTTP": true,
	"ldap": true, "LDAP": true,
	"cifs": true, "CIFS": true,
	"nfs": true, "NFS": true,
}

// IsServiceOrHost reports whether p looks like a service/host
// principal: two-or-more components with a recognized service token,
// or an explicit SRV_INST/SRV_HST name-type.
func (p Principal) IsServiceOrHost() bool {
	if p.NameType == NameTypeSrvInst || p.NameType == NameTypeSrvHst {
		return true
	}
	if len(p.Components) >= 2 && wellKnownServiceTokens[p.Components[0]] {
		return true
	}
	return false
}

// Classify returns the Classification bucket for p: krbtgt takes
// priority, then computer-account, then service/host, then user.
func (p Principal) Classify() Classification {
	switch {
	case p.IsKrbtgt():
		return ClassKrbtgt
	case p.IsComputerAccount():
		return ClassComputerAccount
	case p.IsServiceOrHost():
		if len(p.Components) >= 2 && (p.Components[0] == "host" || p.Components[0] == "HOST") {
			return ClassHost
		}
		return ClassService
	default:
		return ClassUser
	}
}

// AsHostService maps a "$"-suffixed computer-account principal to its
// service form HOST/<host-without-$>, preserving the realm. It is a
// no-op (returns p unchanged) for any principal that is not a computer
// account.
func (p Principal) AsHostService() Principal {
	if !p.IsComputerAccount() {
		return p
	}
	host := strings.TrimSuffix(p.Components[0], "$")
	return Principal{
		Realm:      p.Realm,
		Components: []string{"HOST", host},
		NameType:   NameTypeSrvHst,
	}
}

func lastUnescapedIndex(s string, sep byte) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] != sep {
			continue
		}
		if countTrailingBackslashes(s[:i])%2 == 0 {
			return i
		}
	}
	return -1
}

func splitUnescaped(s string, sep byte) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep && countTrailingBackslashes(s[:i])%2 == 0 {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}

func countTrailingBackslashes(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n
}

func unescapeComponent(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case '/', '@', '\\':
				sb.WriteByte(s[i+1])
				i++
				continue
			}
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func escapeComponent(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '/', '@', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
