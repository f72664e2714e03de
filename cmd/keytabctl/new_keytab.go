package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/Officialstjp/STKeytab-sub001/pkg/keytab"
)

var (
	nkSamAccountName string
	nkDomain         string
	nkKeysFile       string
	nkOutput         string
	nkIncludeRC4     bool
	nkIncludeOld     bool
	nkIncludeOlder   bool
	nkAckRisk        bool
	nkJustification  string
	nkAsHostService  bool
)

// externalKeyFile is the on-disk shape a directory-replication
// collaborator hands to keytabctl: a JSON array of
// (etype, kvno, key, timestamp?) tuples, hex-encoded keys (spec.md §6
// "Directory replication source").
type externalKeyFile struct {
	Etype     uint16 `json:"etype"`
	KVNO      uint32 `json:"kvno"`
	KeyHex    string `json:"key_hex"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

func init() {
	cmd := &cobra.Command{
		Use:   "new-keytab",
		Short: "Build a keytab from externally supplied raw keys",
		RunE:  runNewKeytab,
	}
	cmd.Flags().StringVar(&nkSamAccountName, "sam-account-name", "", "SAM account name")
	cmd.Flags().StringVar(&nkDomain, "domain", "", "domain/realm")
	cmd.Flags().StringVar(&nkKeysFile, "keys-file", "", "path to a JSON file of externally supplied keys")
	cmd.Flags().StringVar(&nkOutput, "output", "", "output keytab path")
	cmd.Flags().BoolVar(&nkIncludeRC4, "include-legacy-rc4", false, "allow rc4-hmac entries from the keys file")
	cmd.Flags().BoolVar(&nkIncludeOld, "include-old-kvno", false, "include the previous KVNO's key if present in the keys file")
	cmd.Flags().BoolVar(&nkIncludeOlder, "include-older-kvno", false, "include the second-previous KVNO's key if present")
	cmd.Flags().BoolVar(&nkAckRisk, "acknowledge-risk", false, "required to emit a multi-KVNO krbtgt keytab")
	cmd.Flags().StringVar(&nkJustification, "justification", "", "required justification text when --acknowledge-risk is set for krbtgt")
	cmd.Flags().BoolVar(&nkAsHostService, "as-host-service", false, "map a $-suffixed computer account to its HOST/<host> service principal")
	cmd.MarkFlagRequired("sam-account-name")
	cmd.MarkFlagRequired("domain")
	cmd.MarkFlagRequired("output")
	rootCmd.AddCommand(cmd)
}

func runNewKeytab(cmd *cobra.Command, args []string) error {
	principal, err := keytab.NewPrincipal(nkDomain, nkSamAccountName)
	if err != nil {
		return err
	}
	if nkAsHostService {
		principal = principal.AsHostService()
	}

	keys, err := loadExternalKeys(nkKeysFile)
	if err != nil {
		return err
	}
	if !nkIncludeRC4 {
		keys = filterOutRC4(keys)
	}

	entries, err := keytab.BuildFromExternalKeys(keytab.ExternalKeysRequest{
		Principal:        principal,
		Keys:             keys,
		IncludeOldKVNO:   nkIncludeOld,
		IncludeOlderKVNO: nkIncludeOlder,
		AcknowledgeRisk:  nkAckRisk,
		Justification:    nkJustification,
	})
	if err != nil {
		return err
	}

	k := &keytab.Keytab{Entries: entries}
	return writeKeytabFile(nkOutput, k, false)
}

func loadExternalKeys(path string) ([]keytab.ExternalKey, error) {
	if path == "" {
		return nil, usageErrorf("--keys-file is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, ioErr(path, err)
	}

	var files []externalKeyFile
	if err := json.Unmarshal(raw, &files); err != nil {
		return nil, usageErrorf("parse keys file %q: %v", path, err)
	}

	out := make([]keytab.ExternalKey, 0, len(files))
	for _, f := range files {
		key, err := decodeHexKey(f.KeyHex)
		if err != nil {
			return nil, usageErrorf("keys file %q: %v", path, err)
		}
		out = append(out, keytab.ExternalKey{
			Etype:     f.Etype,
			KVNO:      f.KVNO,
			Key:       key,
			Timestamp: f.Timestamp,
		})
	}
	return out, nil
}

func filterOutRC4(keys []keytab.ExternalKey) []keytab.ExternalKey {
	out := make([]keytab.ExternalKey, 0, len(keys))
	for _, k := range keys {
		if k.Etype == keytab.ETypeRC4HMAC {
			continue
		}
		out = append(out, k)
	}
	return out
}
