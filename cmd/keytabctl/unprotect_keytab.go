package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Officialstjp/STKeytab-sub001/pkg/keytab"
)

var (
	upkPath            string
	upkScope           string
	upkEntropy         string
	upkRestrictACL     bool
	upkDeletePlaintext bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "unprotect-keytab",
		Short: "Unwrap an at-rest protected keytab file",
		RunE:  runUnprotectKeytab,
	}
	addProtectionFlags(cmd, &upkPath, &upkScope, &upkEntropy, &upkRestrictACL, &upkDeletePlaintext)
	rootCmd.AddCommand(cmd)
}

func runUnprotectKeytab(cmd *cobra.Command, args []string) error {
	scope, err := parseScope(upkScope)
	if err != nil {
		return err
	}

	wrapped, err := os.ReadFile(upkPath)
	if err != nil {
		return ioErr(upkPath, err)
	}

	blob, err := keytab.Unprotect(wrapped, scope, []byte(upkEntropy))
	if err != nil {
		return err
	}

	outPath := strings.TrimSuffix(upkPath, ".wrapped")
	if outPath == upkPath {
		outPath = upkPath + ".unwrapped"
	}
	if err := os.WriteFile(outPath, blob, 0o600); err != nil {
		return ioErr(outPath, err)
	}

	if upkRestrictACL {
		if err := keytab.RestrictACL(outPath); err != nil {
			cmd.PrintErrln("warning:", err)
		}
	}
	if upkDeletePlaintext {
		if err := os.Remove(upkPath); err != nil {
			return ioErr(upkPath, err)
		}
	}

	cmd.Println("wrote", outPath)
	return nil
}
