package keytab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Officialstjp/STKeytab-sub001/pkg/keytab"
)

// TestMerge_ConflictScenario is scenario S5.
func TestMerge_ConflictScenario(t *testing.T) {
	a := &keytab.Keytab{Entries: []keytab.KeytabEntry{userEntry(t, 0x01)}}
	b := &keytab.Keytab{Entries: []keytab.KeytabEntry{userEntry(t, 0x02)}}

	_, err := keytab.Merge(a, b, keytab.MergeOptions{OnConflict: keytab.ConflictFail})
	require.Error(t, err)
	assert.True(t, keytab.IsMergeConflict(err))

	merged, err := keytab.Merge(a, b, keytab.MergeOptions{OnConflict: keytab.ConflictPreferB})
	require.NoError(t, err)
	require.Len(t, merged.Entries, 1)
	assert.Equal(t, b.Entries[0].Key, merged.Entries[0].Key)
}

// TestMerge_AssociativityOnDisjointSets is quantified invariant 6.
func TestMerge_AssociativityOnDisjointSets(t *testing.T) {
	mk := func(kvno uint32) *keytab.Keytab {
		e := userEntry(t, 0x01)
		e.KVNO = kvno
		return &keytab.Keytab{Entries: []keytab.KeytabEntry{e}}
	}
	a, b, c := mk(1), mk(2), mk(3)

	left, err := keytab.Merge(a, b, keytab.MergeOptions{})
	require.NoError(t, err)
	left, err = keytab.Merge(left, c, keytab.MergeOptions{})
	require.NoError(t, err)

	bc, err := keytab.Merge(b, c, keytab.MergeOptions{})
	require.NoError(t, err)
	right, err := keytab.Merge(a, bc, keytab.MergeOptions{})
	require.NoError(t, err)

	assert.ElementsMatch(t, identitiesOf(left), identitiesOf(right))
}

func identitiesOf(k *keytab.Keytab) []uint32 {
	out := make([]uint32, len(k.Entries))
	for i, e := range k.Entries {
		out[i] = e.KVNO
	}
	return out
}

func TestMerge_PreservesOrder(t *testing.T) {
	e1 := userEntry(t, 0x01)
	e1.KVNO = 1
	e2 := userEntry(t, 0x01)
	e2.KVNO = 2
	e3 := userEntry(t, 0x01)
	e3.KVNO = 3

	a := &keytab.Keytab{Entries: []keytab.KeytabEntry{e1, e2}}
	b := &keytab.Keytab{Entries: []keytab.KeytabEntry{e2, e3}}

	merged, err := keytab.Merge(a, b, keytab.MergeOptions{})
	require.NoError(t, err)

	require.Len(t, merged.Entries, 3)
	assert.EqualValues(t, 1, merged.Entries[0].KVNO)
	assert.EqualValues(t, 2, merged.Entries[1].KVNO)
	assert.EqualValues(t, 3, merged.Entries[2].KVNO)
}
