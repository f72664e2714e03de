/*
Package keytab produces, parses, inspects, compares, merges, and
protects Kerberos keytab files in the MIT 0x0502 format.

A keytab binds one or more principals to long-term keys together with
their key version numbers (KVNOs) and encryption types. This package
produces keytabs that are byte-compatible with MIT Kerberos, Heimdal,
and Microsoft Active Directory consumers.

# File Layout (MIT 0x0502)

File = magic(2) = 05 02, followed by a sequence of records, big-endian
throughout:

	int32  record_size      signed; negative means "hole", skip |record_size| bytes
	uint16 num_components    excludes realm
	uint16 realm_len         then realm_len bytes
	repeat num_components times:
	    uint16 comp_len
	    comp_len bytes
	uint32 name_type
	uint32 timestamp         seconds since Unix epoch, truncated to 32 bits
	uint8  kvno8             low 8 bits of KVNO, or 0 placeholder if 32-bit follows
	uint16 etype
	uint16 key_len
	key_len bytes            raw key
	[uint32 kvno32]          present iff record_size leaves exactly 4 trailing bytes

record_size counts the bytes that follow it. The writer emits the
32-bit trailing KVNO iff kvno > 255 or the caller asked for
Force32BitKvno; otherwise only kvno8 is written.

# Building entries

Two independent paths feed entry construction (see BuildFromPassword
and BuildFromExternalKeys):

  - Password path: principal + password + salt policy + etype set are
    turned into keys via PBKDF2-based string-to-key derivation
    (RFC 3962 for AES-SHA1, RFC 8009 for AES-SHA2, MD4/UTF-16LE for
    legacy RC4-HMAC).
  - External-keys path: raw (etype, kvno, key) tuples obtained from an
    out-of-band source (e.g. directory replication) are validated
    against the etype's declared key length and emitted verbatim.

# Risk gates

Multi-KVNO krbtgt keytabs, legacy RC4 emission, and revealing key bytes
in CLI output are all gated behind explicit boolean flags; the krbtgt
multi-KVNO gate additionally requires a non-empty justification string.
*/
package keytab
