package keytab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Officialstjp/STKeytab-sub001/pkg/keytab"
)

func TestTest_ReportsOkOnWellFormedKeytab(t *testing.T) {
	k := &keytab.Keytab{Entries: []keytab.KeytabEntry{userEntry(t, 0x01)}}
	report, err := keytab.Test(k, true)
	require.NoError(t, err)
	assert.True(t, report.Ok())
	assert.Equal(t, 1, report.EntryCount)
}

func TestTest_FlagsKeyLengthMismatch(t *testing.T) {
	e := userEntry(t, 0x01)
	e.Key = e.Key[:10]
	k := &keytab.Keytab{Entries: []keytab.KeytabEntry{e}}

	report, err := keytab.Test(k, false)
	require.NoError(t, err)
	assert.False(t, report.Ok())
	require.Len(t, report.Problems, 1)
}

func TestKeytab_Clone(t *testing.T) {
	k := &keytab.Keytab{Entries: []keytab.KeytabEntry{userEntry(t, 0x01)}}
	clone := k.Clone()

	clone.Entries[0].Key[0] = 0xFF
	assert.NotEqual(t, k.Entries[0].Key[0], clone.Entries[0].Key[0])
}
