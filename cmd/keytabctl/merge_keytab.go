package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Officialstjp/STKeytab-sub001/pkg/keytab"
)

var (
	mkInputs    []string
	mkOnConflict string
	mkOutput     string
)

func init() {
	cmd := &cobra.Command{
		Use:   "merge-keytab",
		Short: "Union two or more keytabs with a conflict policy",
		RunE:  runMergeKeytab,
	}
	cmd.Flags().StringSliceVar(&mkInputs, "inputs", nil, "comma-separated keytab paths, merged left to right")
	cmd.Flags().StringVar(&mkOnConflict, "on-conflict", "fail", "prefer-first, prefer-last, or fail")
	cmd.Flags().StringVar(&mkOutput, "output", "", "output keytab path")
	cmd.MarkFlagRequired("inputs")
	cmd.MarkFlagRequired("output")
	rootCmd.AddCommand(cmd)
}

func runMergeKeytab(cmd *cobra.Command, args []string) error {
	if len(mkInputs) < 2 {
		return usageErrorf("--inputs needs at least two paths")
	}

	policy, err := parseConflictPolicy(mkOnConflict)
	if err != nil {
		return err
	}

	acc, err := readKeytabFile(mkInputs[0])
	if err != nil {
		return err
	}
	for _, path := range mkInputs[1:] {
		next, err := readKeytabFile(path)
		if err != nil {
			return err
		}
		acc, err = keytab.Merge(acc, next, keytab.MergeOptions{OnConflict: policy})
		if err != nil {
			return err
		}
	}

	return writeKeytabFile(mkOutput, acc, false)
}

func parseConflictPolicy(s string) (keytab.ConflictPolicy, error) {
	switch strings.ToLower(s) {
	case "prefer-first":
		return keytab.ConflictPreferA, nil
	case "prefer-last":
		return keytab.ConflictPreferB, nil
	case "fail":
		return keytab.ConflictFail, nil
	default:
		return 0, usageErrorf("unknown --on-conflict %q", s)
	}
}
