package keytab_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Officialstjp/STKeytab-sub001/pkg/keytab"
)

func hostPrincipal(t *testing.T) keytab.Principal {
	t.Helper()
	p, err := keytab.ParsePrincipal("HOST/srv.example.com@EXAMPLE.COM")
	require.NoError(t, err)
	return p
}

// TestCodec_RoundTrip_KVNOTransition is scenario S3: KVNOs 3, 255, 256
// for the same principal/etype must round-trip with byte-identical
// keys, and only the kvno=256 entry should carry a trailing 32-bit
// field.
func TestCodec_RoundTrip_KVNOTransition(t *testing.T) {
	p := hostPrincipal(t)
	k := &keytab.Keytab{Entries: []keytab.KeytabEntry{
		{Principal: p, Etype: 18, KVNO: 3, Key: make([]byte, 32), Timestamp: 1000},
		{Principal: p, Etype: 18, KVNO: 255, Key: make([]byte, 32), Timestamp: 1000},
		{Principal: p, Etype: 18, KVNO: 256, Key: make([]byte, 32), Timestamp: 1000},
	}}
	for i := range k.Entries {
		for j := range k.Entries[i].Key {
			k.Entries[i].Key[j] = byte(i + 1)
		}
	}

	data, err := keytab.Write(k, keytab.WriteOptions{})
	require.NoError(t, err)

	var sizes []int
	for off := 2; off < len(data); {
		n := int(int32(binary.BigEndian.Uint32(data[off:])))
		sizes = append(sizes, n)
		off += 4 + n
	}
	require.Len(t, sizes, 3)
	assert.Equal(t, sizes[0], sizes[1])
	assert.Equal(t, sizes[0]+4, sizes[2])

	got, err := keytab.Read(data)
	require.NoError(t, err)
	require.Len(t, got.Entries, 3)

	for i, e := range got.Entries {
		assert.Equal(t, k.Entries[i].KVNO, e.KVNO)
		assert.Equal(t, k.Entries[i].Key, e.Key)
	}
}

// TestCodec_CompactKVNOPolicy is quantified invariant 5: kvno<=255
// without Force32BitKvno never carries a trailing 32-bit field, and
// kvno>255 always does, adding exactly 4 bytes to the record.
func TestCodec_CompactKVNOPolicy(t *testing.T) {
	p := hostPrincipal(t)
	small := &keytab.Keytab{Entries: []keytab.KeytabEntry{
		{Principal: p, Etype: 18, KVNO: 255, Key: make([]byte, 32)},
	}}
	large := &keytab.Keytab{Entries: []keytab.KeytabEntry{
		{Principal: p, Etype: 18, KVNO: 256, Key: make([]byte, 32)},
	}}

	smallData, err := keytab.Write(small, keytab.WriteOptions{})
	require.NoError(t, err)
	largeData, err := keytab.Write(large, keytab.WriteOptions{})
	require.NoError(t, err)

	assert.Equal(t, len(largeData), len(smallData)+4)
}

// TestCodec_TolerantHole is scenario S6: a negative-size hole record
// is skipped and the well-formed entry that follows parses normally.
func TestCodec_TolerantHole(t *testing.T) {
	p := hostPrincipal(t)
	wellFormed := &keytab.Keytab{Entries: []keytab.KeytabEntry{
		{Principal: p, Etype: 18, KVNO: 1, Key: make([]byte, 32), Timestamp: 42},
	}}
	data, err := keytab.Write(wellFormed, keytab.WriteOptions{})
	require.NoError(t, err)

	hole := []byte{0xFF, 0xFF, 0xFF, 0xF8} // int32(-8)
	holeBody := make([]byte, 8)
	withHole := append(append(append([]byte{}, data[:2]...), hole...), append(holeBody, data[2:]...)...)

	got, err := keytab.Read(withHole)
	require.NoError(t, err)
	require.Len(t, got.Entries, 1)
	assert.Equal(t, wellFormed.Entries[0].KVNO, got.Entries[0].KVNO)
	assert.Equal(t, wellFormed.Entries[0].Key, got.Entries[0].Key)
}

func TestCodec_RoundTrip_Invariant(t *testing.T) {
	p := hostPrincipal(t)
	k := &keytab.Keytab{Entries: []keytab.KeytabEntry{
		{Principal: p, Etype: 17, KVNO: 1, Key: make([]byte, 16), Timestamp: 5},
	}}
	data, err := keytab.Write(k, keytab.WriteOptions{})
	require.NoError(t, err)
	got, err := keytab.Read(data)
	require.NoError(t, err)
	assert.Equal(t, k.Entries, got.Entries)
}

func TestCodec_BadMagicRejected(t *testing.T) {
	_, err := keytab.Read([]byte{0x00, 0x00})
	require.Error(t, err)
	assert.True(t, keytab.IsMalformedKeytab(err))
}
