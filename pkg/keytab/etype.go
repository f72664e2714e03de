package keytab

import "crypto"

// Etype encryption type codes, per RFC 3961/3962/8009. DES and 3DES
// etypes are intentionally absent (spec.md §1 Non-goals).
const (
	ETypeAES128CTSHMACSHA196   uint16 = 17
	ETypeAES256CTSHMACSHA196   uint16 = 18
	ETypeAES128CTSHMACSHA256128 uint16 = 19
	ETypeAES256CTSHMACSHA384192 uint16 = 20
	ETypeRC4HMAC               uint16 = 23
)

// EtypeInfo describes one supported encryption type's key length, hash
// function, and default PBKDF2 iteration count.
type EtypeInfo struct {
	Code         uint16
	Name         string
	KeyLen       int
	Hash         crypto.Hash // zero Hash for RC4 (MD4-based, not PBKDF2)
	DefaultIter  int         // 0 for RC4 (iterations are not applicable)
	Legacy       bool
}

var etypeRegistry = map[uint16]EtypeInfo{
	ETypeAES128CTSHMACSHA196: {
		Code: ETypeAES128CTSHMACSHA196, Name: "aes128-cts-hmac-sha1-96",
		KeyLen: 16, Hash: crypto.SHA1, DefaultIter: 4096,
	},
	ETypeAES256CTSHMACSHA196: {
		Code: ETypeAES256CTSHMACSHA196, Name: "aes256-cts-hmac-sha1-96",
		KeyLen: 32, Hash: crypto.SHA1, DefaultIter: 4096,
	},
	ETypeAES128CTSHMACSHA256128: {
		Code: ETypeAES128CTSHMACSHA256128, Name: "aes128-cts-hmac-sha256-128",
		KeyLen: 16, Hash: crypto.SHA256, DefaultIter: 32768,
	},
	ETypeAES256CTSHMACSHA384192: {
		Code: ETypeAES256CTSHMACSHA384192, Name: "aes256-cts-hmac-sha384-192",
		KeyLen: 32, Hash: crypto.SHA384, DefaultIter: 32768,
	},
	ETypeRC4HMAC: {
		Code: ETypeRC4HMAC, Name: "rc4-hmac",
		KeyLen: 16, Legacy: true,
	},
}

// EtypeByCode looks up etype registry entries. Unknown codes (e.g.
// encountered while reading a keytab produced by another
// implementation) are reported via ok=false; such entries are
// preserved verbatim on read but cannot be produced by the derivation
// path (spec.md §4.C).
func EtypeByCode(code uint16) (EtypeInfo, bool) {
	info, ok := etypeRegistry[code]
	return info, ok
}

// EtypeByName looks up a registry entry by its canonical name (e.g.
// "aes256-cts-hmac-sha1-96").
func EtypeByName(name string) (EtypeInfo, bool) {
	for _, info := range etypeRegistry {
		if info.Name == name {
			return info, true
		}
	}
	return EtypeInfo{}, false
}

// DefaultEtypes is the builder's default etype set when the caller
// does not specify one (spec.md §4.F).
func DefaultEtypes() []uint16 {
	return []uint16{ETypeAES128CTSHMACSHA196, ETypeAES256CTSHMACSHA196}
}
