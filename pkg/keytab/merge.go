package keytab

import "bytes"

// ConflictPolicy selects how Merge resolves two entries sharing an
// identity with different key bytes (spec.md §4.G).
type ConflictPolicy int

const (
	ConflictFail ConflictPolicy = iota
	ConflictPreferA
	ConflictPreferB
)

// MergeOptions configures Merge.
type MergeOptions struct {
	OnConflict ConflictPolicy
}

// Merge unions the entries of a and b by identity (principal, kvno,
// etype). Entries present in only one side are kept; entries present
// in both with equal key bytes are kept once; entries present in both
// with differing key bytes are resolved by opts.OnConflict, returning
// MergeConflict when the policy is ConflictFail.
//
// Result order is a's entries in a's order followed by b's entries
// that are not already present in a, in b's order (spec.md §4.G).
func Merge(a, b *Keytab, opts MergeOptions) (*Keytab, error) {
	indexA := make(map[entryIdentity]int, len(a.Entries))
	out := make([]KeytabEntry, 0, len(a.Entries)+len(b.Entries))

	for i, e := range a.Entries {
		indexA[e.identity()] = i
		out = append(out, e)
	}

	for _, eb := range b.Entries {
		id := eb.identity()
		i, inA := indexA[id]
		if !inA {
			out = append(out, eb)
			continue
		}

		ea := out[i]
		if bytes.Equal(ea.Key, eb.Key) {
			continue
		}

		switch opts.OnConflict {
		case ConflictPreferB:
			out[i] = eb
		case ConflictPreferA:
			// keep ea, already in out
		default:
			return nil, newMergeConflict(ea.Principal.Render())
		}
	}

	return &Keytab{Entries: out}, nil
}
