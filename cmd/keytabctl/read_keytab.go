package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	rkPath        string
	rkRevealKeys  bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "read-keytab",
		Short: "Parse a keytab and print its entries",
		RunE:  runReadKeytab,
	}
	cmd.Flags().StringVar(&rkPath, "path", "", "keytab file to read")
	cmd.Flags().BoolVar(&rkRevealKeys, "reveal-keys", false, "print raw key bytes (sensitive)")
	cmd.MarkFlagRequired("path")
	rootCmd.AddCommand(cmd)
}

func runReadKeytab(cmd *cobra.Command, args []string) error {
	k, err := readKeytabFile(rkPath)
	if err != nil {
		return err
	}

	if rkRevealKeys {
		cmd.Println("warning: --reveal-keys prints raw key material to stdout")
	}

	for i, e := range k.Entries {
		fmt.Printf("%d: %s kvno=%d etype=%d len=%d", i, e.Principal.Render(), e.KVNO, e.Etype, len(e.Key))
		if rkRevealKeys {
			fmt.Printf(" key=%s", hex.EncodeToString(e.Key))
		}
		fmt.Println()
	}
	return nil
}
