package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Officialstjp/STKeytab-sub001/internal/secret"
	"github.com/Officialstjp/STKeytab-sub001/pkg/keytab"
)

var (
	nkfpPrincipal      string
	nkfpSamAccountName string
	nkfpRealm          string
	nkfpPassword       string
	nkfpEtypes         string
	nkfpIterations      int
	nkfpKVNO            uint32
	nkfpCompatibility   string
	nkfpSalt            string
	nkfpIncludeRC4       bool
	nkfpOutput           string
)

func init() {
	cmd := &cobra.Command{
		Use:   "new-keytab-from-password",
		Short: "Build a keytab entry set by deriving keys from a password",
		RunE:  runNewKeytabFromPassword,
	}
	cmd.Flags().StringVar(&nkfpPrincipal, "principal", "", "principal in c1/c2/...@REALM form")
	cmd.Flags().StringVar(&nkfpSamAccountName, "sam-account-name", "", "SAM account name (requires --realm)")
	cmd.Flags().StringVar(&nkfpRealm, "realm", "", "realm, required with --sam-account-name")
	cmd.Flags().StringVar(&nkfpPassword, "password", "", "password (omit to be prompted)")
	cmd.Flags().StringVar(&nkfpEtypes, "include-etype", "17,18", "comma-separated etype codes")
	cmd.Flags().IntVar(&nkfpIterations, "iterations", 0, "PBKDF2 iteration count override (0 = etype default)")
	cmd.Flags().Uint32Var(&nkfpKVNO, "kvno", 1, "key version number")
	cmd.Flags().StringVar(&nkfpCompatibility, "compatibility", "MIT", "salt policy: MIT, Heimdal, or Windows")
	cmd.Flags().StringVar(&nkfpSalt, "salt", "", "explicit salt bytes (UTF-8), overrides policy")
	cmd.Flags().BoolVar(&nkfpIncludeRC4, "include-legacy-rc4", false, "allow an rc4-hmac entry when etype 23 is listed in --include-etype")
	cmd.Flags().StringVar(&nkfpOutput, "output", "", "output keytab path")
	cmd.MarkFlagRequired("output")
	rootCmd.AddCommand(cmd)
}

func runNewKeytabFromPassword(cmd *cobra.Command, args []string) error {
	principal, err := resolvePrincipal(nkfpPrincipal, nkfpSamAccountName, nkfpRealm)
	if err != nil {
		return err
	}

	compat, ok := keytab.ParseCompatibility(nkfpCompatibility)
	if !ok {
		return usageErrorf("unknown --compatibility %q", nkfpCompatibility)
	}

	etypes, err := parseEtypeList(nkfpEtypes)
	if err != nil {
		return err
	}

	password := keytab.NewSecureString(nkfpPassword)
	if nkfpPassword == "" {
		password, err = secret.ReadPassword(os.Stdin, "Password: ")
		if err != nil {
			return err
		}
	}
	defer password.Zero()

	var salt []byte
	if nkfpSalt != "" {
		salt = []byte(nkfpSalt)
	}

	entries, err := keytab.BuildFromPassword(keytab.PasswordRequest{
		Principal:        principal,
		Password:         password,
		Etypes:           etypes,
		KVNO:             nkfpKVNO,
		Compat:           compat,
		Salt:             salt,
		Iterations:       nkfpIterations,
		IncludeLegacyRC4: nkfpIncludeRC4,
	})
	if err != nil {
		return err
	}

	k := &keytab.Keytab{Entries: entries}
	return writeKeytabFile(nkfpOutput, k, false)
}

func resolvePrincipal(principalFlag, samAccountName, realm string) (keytab.Principal, error) {
	if principalFlag != "" {
		return keytab.ParsePrincipal(principalFlag)
	}
	if samAccountName == "" || realm == "" {
		return keytab.Principal{}, usageErrorf("either --principal or both --sam-account-name and --realm are required")
	}
	return keytab.NewPrincipal(realm, samAccountName)
}

func parseEtypeList(s string) ([]uint16, error) {
	parts := strings.Split(s, ",")
	out := make([]uint16, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, usageErrorf("invalid etype %q: %v", p, err)
		}
		out = append(out, uint16(n))
	}
	return out, nil
}
