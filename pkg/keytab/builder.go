package keytab

// ExternalKey is one raw key supplied by a directory-replication source
// or any other collaborator that already holds key material (spec.md
// §4.F path 2). Timestamp is optional; zero means "use the writer's
// default at encode time".
type ExternalKey struct {
	Etype     uint16
	KVNO      uint32
	Key       []byte
	Timestamp int64
}

// PasswordRequest is the input to BuildFromPassword: a principal,
// secure password, and the set of etypes/kvno/salt policy to derive
// entries for.
type PasswordRequest struct {
	Principal  Principal
	Password   *SecureString
	Etypes     []uint16 // defaults to DefaultEtypes() when empty
	KVNO       uint32   // defaults to 1 when zero
	Compat     Compatibility
	Salt       []byte // explicit salt; overrides Compat-derived salt when non-nil
	Iterations int    // explicit iteration count; 0 means "use the etype default"

	IncludeLegacyRC4 bool
}

// BuildFromPassword derives one KeytabEntry per requested etype from a
// password, constructing the salt from Compat unless Salt is set
// explicitly (spec.md §4.F path 1). RC4-HMAC is only emitted when
// IncludeLegacyRC4 is set; requesting it without the flag silently
// omits that entry rather than erroring, since the caller may have
// listed it as part of a generic "all supported etypes" set.
func BuildFromPassword(req PasswordRequest) ([]KeytabEntry, error) {
	etypes := req.Etypes
	if len(etypes) == 0 {
		etypes = DefaultEtypes()
	}
	kvno := req.KVNO
	if kvno == 0 {
		kvno = 1
	}

	var entries []KeytabEntry
	for _, et := range etypes {
		info, ok := EtypeByCode(et)
		if !ok {
			return nil, newUnsupportedEtype(et)
		}
		if info.Legacy && !req.IncludeLegacyRC4 {
			continue
		}

		salt := req.Salt
		if salt == nil && !info.Legacy {
			salt = DefaultSalt(req.Principal, req.Compat)
		}

		iterations := req.Iterations
		if iterations == 0 {
			iterations = info.DefaultIter
		}

		key, err := Derive(et, req.Password, salt, iterations)
		if err != nil {
			return nil, err
		}

		entries = append(entries, KeytabEntry{
			Principal: req.Principal,
			Etype:     et,
			KVNO:      kvno,
			Key:       key,
		})
	}
	return entries, nil
}

// ExternalKeysRequest is the input to BuildFromExternalKeys: a
// principal and a list of raw keys already obtained out-of-band
// (spec.md §4.F path 2), plus the multi-KVNO risk gate.
type ExternalKeysRequest struct {
	Principal Principal
	Keys      []ExternalKey

	IncludeOldKVNO    bool
	IncludeOlderKVNO  bool
	AcknowledgeRisk   bool
	Justification     string
}

// BuildFromExternalKeys validates and wraps externally supplied keys
// into KeytabEntry values verbatim, without deriving anything (spec.md
// §4.F path 2). Keys at the highest KVNO N present in Keys are always
// emitted; keys at N-1 are emitted only with IncludeOldKVNO and keys at
// N-2 only with IncludeOlderKVNO. Keys at any other KVNO are dropped.
// The selected keys keep their order from Keys.
//
// krbtgt principals with more than one distinct KVNO among the selected
// keys require AcknowledgeRisk=true and a non-empty Justification, or
// the builder refuses with RiskNotAcknowledged (spec.md §4.F, scenario S4).
func BuildFromExternalKeys(req ExternalKeysRequest) ([]KeytabEntry, error) {
	var maxKVNO uint32
	for _, k := range req.Keys {
		if k.KVNO > maxKVNO {
			maxKVNO = k.KVNO
		}
	}
	keys := make([]ExternalKey, 0, len(req.Keys))
	for _, k := range req.Keys {
		switch {
		case k.KVNO == maxKVNO,
			req.IncludeOldKVNO && k.KVNO+1 == maxKVNO,
			req.IncludeOlderKVNO && k.KVNO+2 == maxKVNO:
			keys = append(keys, k)
		}
	}

	if req.Principal.IsKrbtgt() && distinctKVNOCount(keys) > 1 {
		if !req.AcknowledgeRisk || req.Justification == "" {
			return nil, newRiskNotAcknowledged("multi-KVNO krbtgt keytab requires acknowledge_risk and a justification")
		}
	}

	entries := make([]KeytabEntry, 0, len(keys))
	for _, ek := range keys {
		info, ok := EtypeByCode(ek.Etype)
		if ok && len(ek.Key) != info.KeyLen {
			return nil, newKeyLengthMismatch(ek.Etype, info.KeyLen, len(ek.Key))
		}
		entries = append(entries, KeytabEntry{
			Principal: req.Principal,
			Etype:     ek.Etype,
			KVNO:      ek.KVNO,
			Key:       ek.Key,
			Timestamp: ek.Timestamp,
		})
	}
	return entries, nil
}

func distinctKVNOCount(keys []ExternalKey) int {
	seen := make(map[uint32]bool)
	for _, k := range keys {
		seen[k.KVNO] = true
	}
	return len(seen)
}
