package keytab

import (
	"crypto/aes"
	"crypto/hmac"
	_ "crypto/sha1"   // registers crypto.SHA1 for etypes 17/18's info.Hash.New
	_ "crypto/sha256" // registers crypto.SHA256 for etype 19's info.Hash.New
	_ "crypto/sha512" // registers crypto.SHA384 for etype 20's info.Hash.New
	"encoding/binary"
	"hash"
	"unicode/utf16"

	"golang.org/x/crypto/md4"
	"golang.org/x/crypto/pbkdf2"
)

// kerberosDKLabel is the well-known constant DK/DR is applied with
// when deriving a long-term key from a PBKDF2 intermediate (RFC 3961
// §4, RFC 8009 §4): the ASCII bytes of "kerberos".
var kerberosDKLabel = []byte("kerberos")

const aesBlockSize = 16

// Derive runs the string-to-key derivation for etype using password
// and salt. iterations must be > 0 for PBKDF2-based etypes (the
// caller — normally Builder — is responsible for filling in the
// etype's default iteration count before calling Derive); it is
// ignored for RC4-HMAC. The returned key's length always equals the
// etype's declared KeyLen (spec.md §8 invariant 2).
func Derive(etypeCode uint16, password *SecureString, salt []byte, iterations int) ([]byte, error) {
	info, ok := EtypeByCode(etypeCode)
	if !ok {
		return nil, newUnsupportedEtype(etypeCode)
	}

	if info.Legacy {
		return deriveRC4(password)
	}

	if iterations <= 0 {
		return nil, newInvalidIterationCount()
	}

	if etypeCode == ETypeAES128CTSHMACSHA256128 || etypeCode == ETypeAES256CTSHMACSHA384192 {
		// RFC 8009 §4: saltp = enctype-name | 0x00 | salt.
		saltp := make([]byte, 0, len(info.Name)+1+len(salt))
		saltp = append(saltp, info.Name...)
		saltp = append(saltp, 0x00)
		salt = append(saltp, salt...)
	}

	intermediate := pbkdf2.Key(password.Bytes(), salt, iterations, info.KeyLen, info.Hash.New)
	defer zeroBytes(intermediate)

	switch etypeCode {
	case ETypeAES128CTSHMACSHA196, ETypeAES256CTSHMACSHA196:
		key, err := deriveRandomToKeyAES(intermediate, kerberosDKLabel, info.KeyLen)
		if err != nil {
			return nil, newDerivationFailed(err)
		}
		return key, nil
	case ETypeAES128CTSHMACSHA256128, ETypeAES256CTSHMACSHA384192:
		return deriveKDFHMACSHA2(intermediate, string(kerberosDKLabel), info.Hash.New, info.KeyLen), nil
	default:
		return nil, newUnsupportedEtype(etypeCode)
	}
}

// deriveRandomToKeyAES implements DK(key, constant) = random-to-key(DR(key, constant))
// for the AES-SHA1 etypes (RFC 3962 §4). random-to-key is the identity
// function for AES: DR's output is used directly as the key.
func deriveRandomToKeyAES(key, constant []byte, keyLen int) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	in := constant
	if len(in) != aesBlockSize {
		in = nFold(constant, aesBlockSize)
	}

	out := make([]byte, 0, keyLen+aesBlockSize)
	cur := make([]byte, aesBlockSize)
	copy(cur, in)
	for len(out) < keyLen {
		next := make([]byte, aesBlockSize)
		block.Encrypt(next, cur)
		out = append(out, next...)
		cur = next
	}
	return out[:keyLen], nil
}

// deriveKDFHMACSHA2 implements KDF-HMAC-SHA2(key, label, k) from
// RFC 8009 §3, used in place of DK/DR for the AES-SHA2 etypes.
func deriveKDFHMACSHA2(baseKey []byte, label string, hashNew func() hash.Hash, outLen int) []byte {
	kBits := uint32(outLen * 8)
	out := make([]byte, 0, outLen+hashNew().Size())
	for counter := uint32(1); len(out) < outLen; counter++ {
		mac := hmac.New(hashNew, baseKey)
		var counterBytes, kBitsBytes [4]byte
		binary.BigEndian.PutUint32(counterBytes[:], counter)
		binary.BigEndian.PutUint32(kBitsBytes[:], kBits)
		mac.Write(counterBytes[:])
		mac.Write([]byte(label))
		mac.Write([]byte{0x00})
		mac.Write(kBitsBytes[:])
		out = append(out, mac.Sum(nil)...)
	}
	return out[:outLen]
}

// deriveRC4 implements the legacy RC4-HMAC string-to-key: MD4 of the
// UTF-16LE-encoded password. Salt and iteration count are ignored
// (spec.md §4.D).
func deriveRC4(password *SecureString) ([]byte, error) {
	utf16le := utf16LEBytes(password.Bytes())
	defer zeroBytes(utf16le)

	h := md4.New()
	h.Write(utf16le)
	return h.Sum(nil), nil
}

func utf16LEBytes(password []byte) []byte {
	runes := []rune(string(password))
	units := utf16.Encode(runes)
	out := make([]byte, len(units)*2)
	for i, u := range units {
		binary.LittleEndian.PutUint16(out[i*2:], u)
	}
	return out
}
