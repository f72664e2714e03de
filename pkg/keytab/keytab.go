package keytab

import (
	"bytes"
	"fmt"
)

// KeytabEntry binds a principal to one long-term key under a given
// KVNO and encryption type (spec.md §3).
type KeytabEntry struct {
	Principal Principal
	Etype     uint16
	KVNO      uint32
	Key       []byte
	Timestamp int64 // seconds since Unix epoch, truncated to 32 bits on write
}

// identity returns the (principal, kvno, etype) tuple that set
// operations (compare, merge) key entries by (spec.md §3).
func (e KeytabEntry) identity() entryIdentity {
	return entryIdentity{
		principal: e.Principal.Render(),
		kvno:      e.KVNO,
		etype:     e.Etype,
	}
}

type entryIdentity struct {
	principal string
	kvno      uint32
	etype     uint16
}

// Keytab is an ordered list of entries, preceded on the wire by the
// two-byte magic 0x05 0x02. Order is preserved on read and on write;
// duplicate identities are tolerated on read but rejected by Merge
// unless the conflict policy allows them.
type Keytab struct {
	Entries []KeytabEntry
}

// New returns an empty Keytab.
func New() *Keytab {
	return &Keytab{}
}

// Clone returns a deep copy of k, so the result is safe to mutate
// independently (Keytab values are otherwise treated as immutable
// after construction, see spec.md §5).
func (k *Keytab) Clone() *Keytab {
	out := &Keytab{Entries: make([]KeytabEntry, len(k.Entries))}
	for i, e := range k.Entries {
		ec := e
		ec.Key = append([]byte(nil), e.Key...)
		out.Entries[i] = ec
	}
	return out
}

// Test performs the façade's structural self-check: every record's
// key length matches its etype's declared size. The builders enforce
// this; Read does not (it preserves whatever key bytes a record holds),
// so Test exists so callers can verify a Keytab read from a file (or
// reassembled by hand) before relying on it.
type TestReport struct {
	EntryCount int
	Problems   []string
}

// Ok reports whether the self-check found no problems.
func (r TestReport) Ok() bool { return len(r.Problems) == 0 }

// Test runs the façade's self-check (spec.md §4.I): magic is implicit
// (this package never constructs a Keytab without it), every key
// length matches its etype, and — when detailed is true — every
// record is confirmed to round-trip through Write/Read.
func Test(k *Keytab, detailed bool) (TestReport, error) {
	report := TestReport{EntryCount: len(k.Entries)}

	for i, e := range k.Entries {
		if info, ok := EtypeByCode(e.Etype); ok {
			if len(e.Key) != info.KeyLen {
				report.Problems = append(report.Problems, keyLenProblem(i, e, info.KeyLen))
			}
		}
		if err := e.Principal.Validate(); err != nil {
			report.Problems = append(report.Problems, principalProblem(i, err))
		}
	}

	if detailed {
		buf, err := Write(k, WriteOptions{})
		if err != nil {
			report.Problems = append(report.Problems, "round-trip write failed: "+err.Error())
			return report, nil
		}
		roundTripped, err := Read(buf)
		if err != nil {
			report.Problems = append(report.Problems, "round-trip read failed: "+err.Error())
			return report, nil
		}
		if len(roundTripped.Entries) != len(k.Entries) {
			report.Problems = append(report.Problems, "round-trip entry count mismatch")
		} else {
			for i, e := range k.Entries {
				rt := roundTripped.Entries[i]
				if rt.identity() != e.identity() || !bytes.Equal(rt.Key, e.Key) {
					report.Problems = append(report.Problems, fmt.Sprintf("entry %d: round-trip mismatch", i))
				}
			}
		}
	}

	return report, nil
}

func keyLenProblem(i int, e KeytabEntry, expected int) string {
	return fmt.Sprintf("entry %d (%s): key length %d, expected %d for etype %d", i, e.Principal.Render(), len(e.Key), expected, e.Etype)
}

func principalProblem(i int, err error) string {
	return fmt.Sprintf("entry %d: invalid principal: %v", i, err)
}
