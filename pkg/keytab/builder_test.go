package keytab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Officialstjp/STKeytab-sub001/pkg/keytab"
)

func TestBuildFromPassword_DefaultEtypesAndKVNO(t *testing.T) {
	p, err := keytab.ParsePrincipal("user1@EXAMPLE.COM")
	require.NoError(t, err)

	entries, err := keytab.BuildFromPassword(keytab.PasswordRequest{
		Principal: p,
		Password:  keytab.NewSecureString("password"),
		Compat:    keytab.CompatMIT,
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.EqualValues(t, 1, e.KVNO)
	}
}

func TestBuildFromPassword_RC4RequiresFlag(t *testing.T) {
	p, err := keytab.ParsePrincipal("user1@EXAMPLE.COM")
	require.NoError(t, err)

	entries, err := keytab.BuildFromPassword(keytab.PasswordRequest{
		Principal: p,
		Password:  keytab.NewSecureString("password"),
		Etypes:    []uint16{keytab.ETypeRC4HMAC},
		Compat:    keytab.CompatMIT,
	})
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = keytab.BuildFromPassword(keytab.PasswordRequest{
		Principal:        p,
		Password:         keytab.NewSecureString("password"),
		Etypes:           []uint16{keytab.ETypeRC4HMAC},
		Compat:           keytab.CompatMIT,
		IncludeLegacyRC4: true,
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

// TestBuildFromExternalKeys_KrbtgtRiskGate is scenario S4.
func TestBuildFromExternalKeys_KrbtgtRiskGate(t *testing.T) {
	p, err := keytab.ParsePrincipal("krbtgt/EXAMPLE.COM@EXAMPLE.COM")
	require.NoError(t, err)

	keys := []keytab.ExternalKey{
		{Etype: 18, KVNO: 10, Key: make([]byte, 32)},
		{Etype: 18, KVNO: 9, Key: make([]byte, 32)},
		{Etype: 18, KVNO: 8, Key: make([]byte, 32)},
	}

	_, err = keytab.BuildFromExternalKeys(keytab.ExternalKeysRequest{
		Principal:        p,
		Keys:             keys,
		IncludeOldKVNO:   true,
		IncludeOlderKVNO: true,
	})
	require.Error(t, err)
	assert.True(t, keytab.IsRiskNotAcknowledged(err))

	entries, err := keytab.BuildFromExternalKeys(keytab.ExternalKeysRequest{
		Principal:        p,
		Keys:             keys,
		IncludeOldKVNO:   true,
		IncludeOlderKVNO: true,
		AcknowledgeRisk:  true,
		Justification:    "dc-migration",
	})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.EqualValues(t, 10, entries[0].KVNO)
	assert.EqualValues(t, 9, entries[1].KVNO)
	assert.EqualValues(t, 8, entries[2].KVNO)
}

func TestBuildFromExternalKeys_KeyLengthValidated(t *testing.T) {
	p, err := keytab.ParsePrincipal("user1@EXAMPLE.COM")
	require.NoError(t, err)

	_, err = keytab.BuildFromExternalKeys(keytab.ExternalKeysRequest{
		Principal: p,
		Keys:      []keytab.ExternalKey{{Etype: 18, KVNO: 1, Key: make([]byte, 10)}},
	})
	require.Error(t, err)
	assert.True(t, keytab.IsKind(err, keytab.ErrKindKeyLengthMismatch))
}
