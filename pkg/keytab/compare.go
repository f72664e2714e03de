package keytab

import "bytes"

// DiffMember is one entry identity appearing in a Diff, annotated with
// whether both sides agree on key bytes when the identity is in both.
type DiffMember struct {
	Principal string
	KVNO      uint32
	Etype     uint16
	KeysEqual bool // only meaningful for entries in in_both
}

// Diff is the result of Compare: a partition of the union of both
// keytabs' entry identities into three disjoint sets (spec.md §8
// invariant 7). Identities are deduplicated within each keytab: when a
// keytab holds several entries with the same identity, only the last of
// them is compared. The order of members within each list is not
// defined.
type Diff struct {
	OnlyInA []DiffMember
	OnlyInB []DiffMember
	InBoth  []DiffMember
}

// CompareOptions controls how principals are compared for identity
// purposes.
type CompareOptions struct {
	// Normalize, when true, compares principals the way Windows-compat
	// diffs want: service/host components lowercased and realm
	// uppercased, rather than byte-for-byte (spec.md §4.G).
	Normalize bool
}

// Compare partitions the entries of a and b by identity (principal,
// kvno, etype) into only_in_a, only_in_b, and in_both (spec.md §4.G).
func Compare(a, b *Keytab, opts CompareOptions) Diff {
	indexA := indexEntries(a, opts)
	indexB := indexEntries(b, opts)

	var diff Diff
	for key, ea := range indexA {
		eb, inB := indexB[key]
		if !inB {
			diff.OnlyInA = append(diff.OnlyInA, DiffMember{Principal: key.principal, KVNO: key.kvno, Etype: key.etype})
			continue
		}
		diff.InBoth = append(diff.InBoth, DiffMember{
			Principal: key.principal,
			KVNO:      key.kvno,
			Etype:     key.etype,
			KeysEqual: bytes.Equal(ea.Key, eb.Key),
		})
	}
	for key := range indexB {
		if _, inA := indexA[key]; !inA {
			diff.OnlyInB = append(diff.OnlyInB, DiffMember{Principal: key.principal, KVNO: key.kvno, Etype: key.etype})
		}
	}
	return diff
}

func indexEntries(k *Keytab, opts CompareOptions) map[entryIdentity]KeytabEntry {
	out := make(map[entryIdentity]KeytabEntry, len(k.Entries))
	for _, e := range k.Entries {
		id := e.identity()
		if opts.Normalize {
			id.principal = normalizedPrincipal(e.Principal)
		}
		out[id] = e
	}
	return out
}

func normalizedPrincipal(p Principal) string {
	norm := p
	norm.Components = append([]string(nil), p.Components...)
	if p.IsServiceOrHost() {
		for i, c := range norm.Components {
			norm.Components[i] = toLowerASCII(c)
		}
	}
	norm.Realm = toUpperASCII(p.Realm)
	return norm.Render()
}

func toLowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func toUpperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
