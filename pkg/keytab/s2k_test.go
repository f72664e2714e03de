package keytab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Officialstjp/STKeytab-sub001/pkg/keytab"
)

func TestDerive_KeyLengthMatchesEtype(t *testing.T) {
	for _, code := range []uint16{17, 18, 19, 20, 23} {
		info, ok := keytab.EtypeByCode(code)
		require.True(t, ok)

		password := keytab.NewSecureString("password")
		key, err := keytab.Derive(code, password, []byte("EXAMPLE.COMuser1"), info.DefaultIter)
		require.NoError(t, err, code)
		assert.Len(t, key, info.KeyLen, code)
	}
}

func TestDerive_Deterministic(t *testing.T) {
	password := keytab.NewSecureString("password")
	salt := []byte("EXAMPLE.COMuser1")

	a, err := keytab.Derive(18, password, salt, 4096)
	require.NoError(t, err)
	b, err := keytab.Derive(18, password, salt, 4096)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDerive_DifferentSaltsDifferentKeys(t *testing.T) {
	password := keytab.NewSecureString("password")

	a, err := keytab.Derive(18, password, []byte("saltone"), 4096)
	require.NoError(t, err)
	b, err := keytab.Derive(18, password, []byte("salttwo"), 4096)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDerive_UnsupportedEtype(t *testing.T) {
	password := keytab.NewSecureString("password")
	_, err := keytab.Derive(1, password, []byte("salt"), 4096)
	require.Error(t, err)
	assert.True(t, keytab.IsKind(err, keytab.ErrKindUnsupportedEtype))
}

func TestDerive_ZeroIterationsRejected(t *testing.T) {
	password := keytab.NewSecureString("password")
	_, err := keytab.Derive(18, password, []byte("salt"), 0)
	require.Error(t, err)
	assert.True(t, keytab.IsKind(err, keytab.ErrKindInvalidIterationCount))
}

func TestDerive_RC4IgnoresSaltAndIterations(t *testing.T) {
	password := keytab.NewSecureString("password")
	a, err := keytab.Derive(23, password, []byte("irrelevant-a"), 0)
	require.NoError(t, err)
	b, err := keytab.Derive(23, password, []byte("irrelevant-b"), 9999)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
