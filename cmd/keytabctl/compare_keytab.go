package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Officialstjp/STKeytab-sub001/pkg/keytab"
)

var (
	ckLeft      string
	ckRight     string
	ckNormalize bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "compare-keytab",
		Short: "Show a structural diff between two keytabs",
		RunE:  runCompareKeytab,
	}
	cmd.Flags().StringVar(&ckLeft, "left", "", "first keytab path")
	cmd.Flags().StringVar(&ckRight, "right", "", "second keytab path")
	cmd.Flags().BoolVar(&ckNormalize, "normalize", false, "use Windows-compat normalized principal comparison")
	cmd.MarkFlagRequired("left")
	cmd.MarkFlagRequired("right")
	rootCmd.AddCommand(cmd)
}

func runCompareKeytab(cmd *cobra.Command, args []string) error {
	a, err := readKeytabFile(ckLeft)
	if err != nil {
		return err
	}
	b, err := readKeytabFile(ckRight)
	if err != nil {
		return err
	}

	diff := keytab.Compare(a, b, keytab.CompareOptions{Normalize: ckNormalize})

	fmt.Printf("only in %s (%d):\n", ckLeft, len(diff.OnlyInA))
	for _, m := range diff.OnlyInA {
		fmt.Printf("  %s kvno=%d etype=%d\n", m.Principal, m.KVNO, m.Etype)
	}
	fmt.Printf("only in %s (%d):\n", ckRight, len(diff.OnlyInB))
	for _, m := range diff.OnlyInB {
		fmt.Printf("  %s kvno=%d etype=%d\n", m.Principal, m.KVNO, m.Etype)
	}
	fmt.Printf("in both (%d):\n", len(diff.InBoth))
	for _, m := range diff.InBoth {
		fmt.Printf("  %s kvno=%d etype=%d keys_equal=%v\n", m.Principal, m.KVNO, m.Etype, m.KeysEqual)
	}
	return nil
}
