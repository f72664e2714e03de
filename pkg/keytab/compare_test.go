package keytab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Officialstjp/STKeytab-sub001/pkg/keytab"
)

func userEntry(t *testing.T, keyByte byte) keytab.KeytabEntry {
	t.Helper()
	p, err := keytab.ParsePrincipal("user1@EXAMPLE.COM")
	require.NoError(t, err)
	key := make([]byte, 32)
	for i := range key {
		key[i] = keyByte
	}
	return keytab.KeytabEntry{Principal: p, Etype: 18, KVNO: 1, Key: key}
}

// TestCompare_IsAPartition is quantified invariant 7: only_in_a,
// only_in_b, and in_both partition the union with no duplicates.
func TestCompare_IsAPartition(t *testing.T) {
	shared := userEntry(t, 0x01)
	onlyA := shared
	onlyA.KVNO = 2
	onlyB := shared
	onlyB.KVNO = 3

	a := &keytab.Keytab{Entries: []keytab.KeytabEntry{shared, onlyA}}
	b := &keytab.Keytab{Entries: []keytab.KeytabEntry{shared, onlyB}}

	diff := keytab.Compare(a, b, keytab.CompareOptions{})
	assert.Len(t, diff.OnlyInA, 1)
	assert.Len(t, diff.OnlyInB, 1)
	assert.Len(t, diff.InBoth, 1)
	assert.True(t, diff.InBoth[0].KeysEqual)
}

func TestCompare_KeysEqualFlag(t *testing.T) {
	a := &keytab.Keytab{Entries: []keytab.KeytabEntry{userEntry(t, 0x01)}}
	b := &keytab.Keytab{Entries: []keytab.KeytabEntry{userEntry(t, 0x02)}}

	diff := keytab.Compare(a, b, keytab.CompareOptions{})
	require.Len(t, diff.InBoth, 1)
	assert.False(t, diff.InBoth[0].KeysEqual)
}
