package keytab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Officialstjp/STKeytab-sub001/pkg/keytab"
)

func TestParsePrincipal_RoundTrip(t *testing.T) {
	cases := []string{
		"user1@EXAMPLE.COM",
		"HTTP/web01.example.com@EXAMPLE.COM",
		`host\/name/extra@EXAMPLE.COM`,
	}
	for _, text := range cases {
		p, err := keytab.ParsePrincipal(text)
		require.NoError(t, err, text)
		assert.Equal(t, text, p.Render())
	}
}

func TestParsePrincipal_MissingRealm(t *testing.T) {
	_, err := keytab.ParsePrincipal("user1")
	require.Error(t, err)
	assert.True(t, keytab.IsKind(err, keytab.ErrKindParse))
}

func TestPrincipal_Classify(t *testing.T) {
	user, err := keytab.ParsePrincipal("user1@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, keytab.ClassUser, user.Classify())

	host, err := keytab.ParsePrincipal("HOST/srv.example.com@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, keytab.ClassHost, host.Classify())

	krbtgt, err := keytab.ParsePrincipal("krbtgt/EXAMPLE.COM@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, keytab.ClassKrbtgt, krbtgt.Classify())

	computer, err := keytab.NewPrincipal("EXAMPLE.COM", "WORKSTATION1$")
	require.NoError(t, err)
	assert.Equal(t, keytab.ClassComputerAccount, computer.Classify())
}

func TestPrincipal_AsHostService(t *testing.T) {
	computer, err := keytab.NewPrincipal("EXAMPLE.COM", "WORKSTATION1$")
	require.NoError(t, err)

	svc := computer.AsHostService()
	assert.Equal(t, []string{"HOST", "WORKSTATION1"}, svc.Components)
	assert.Equal(t, keytab.NameTypeSrvHst, svc.NameType)
}

func TestPrincipal_Validate(t *testing.T) {
	_, err := keytab.NewPrincipal("", "user1")
	require.Error(t, err)
	assert.True(t, keytab.IsKind(err, keytab.ErrKindInvalidPrincipal))
}
