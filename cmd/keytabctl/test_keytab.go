package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Officialstjp/STKeytab-sub001/pkg/keytab"
)

var (
	tkPath     string
	tkDetailed bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "test-keytab",
		Short: "Run the structural self-check on a keytab",
		RunE:  runTestKeytab,
	}
	cmd.Flags().StringVar(&tkPath, "path", "", "keytab file to check")
	cmd.Flags().BoolVar(&tkDetailed, "detailed", false, "also verify the keytab round-trips through write/read")
	cmd.MarkFlagRequired("path")
	rootCmd.AddCommand(cmd)
}

func runTestKeytab(cmd *cobra.Command, args []string) error {
	k, err := readKeytabFile(tkPath)
	if err != nil {
		return err
	}

	report, err := keytab.Test(k, tkDetailed)
	if err != nil {
		return err
	}

	fmt.Printf("%d entries checked\n", report.EntryCount)
	for _, p := range report.Problems {
		fmt.Println("  -", p)
	}
	if !report.Ok() {
		return &keytab.Error{Kind: keytab.ErrKindMalformedKeytab, Message: fmt.Sprintf("%d problem(s) found", len(report.Problems))}
	}
	fmt.Println("ok")
	return nil
}
