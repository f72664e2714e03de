package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Officialstjp/STKeytab-sub001/pkg/keytab"
)

var (
	pkPath            string
	pkScope           string
	pkEntropy         string
	pkRestrictACL     bool
	pkDeletePlaintext bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "protect-keytab",
		Short: "Wrap a keytab file for at-rest storage",
		RunE:  runProtectKeytab,
	}
	addProtectionFlags(cmd, &pkPath, &pkScope, &pkEntropy, &pkRestrictACL, &pkDeletePlaintext)
	rootCmd.AddCommand(cmd)
}

func addProtectionFlags(cmd *cobra.Command, path, scope, entropy *string, restrictACL, deletePlaintext *bool) {
	cmd.Flags().StringVar(path, "path", "", "keytab file to act on")
	cmd.Flags().StringVar(scope, "scope", string(keytab.ScopeCurrentUser), "current-user or machine")
	cmd.Flags().StringVar(entropy, "entropy", "", "optional additional entropy mixed into the wrap key")
	cmd.Flags().BoolVar(restrictACL, "restrict-acl", false, "narrow file permissions to the invoking user")
	cmd.Flags().BoolVar(deletePlaintext, "delete-plaintext", false, "remove the input file (--path) after success")
	cmd.MarkFlagRequired("path")
}

func runProtectKeytab(cmd *cobra.Command, args []string) error {
	scope, err := parseScope(pkScope)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(pkPath)
	if err != nil {
		return ioErr(pkPath, err)
	}

	wrapped, err := keytab.Protect(data, scope, []byte(pkEntropy))
	if err != nil {
		return err
	}

	outPath := pkPath + ".wrapped"
	if err := os.WriteFile(outPath, wrapped, 0o600); err != nil {
		return ioErr(outPath, err)
	}

	if pkRestrictACL {
		if err := keytab.RestrictACL(outPath); err != nil {
			cmd.PrintErrln("warning:", err)
		}
	}
	if pkDeletePlaintext {
		if err := os.Remove(pkPath); err != nil {
			return ioErr(pkPath, err)
		}
	}

	cmd.Println("wrote", outPath)
	return nil
}

func parseScope(s string) (keytab.Scope, error) {
	switch keytab.Scope(s) {
	case keytab.ScopeCurrentUser, keytab.ScopeMachine:
		return keytab.Scope(s), nil
	default:
		return "", usageErrorf("unknown --scope %q", s)
	}
}
