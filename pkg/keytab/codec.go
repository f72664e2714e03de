package keytab

import (
	"bytes"
	"encoding/binary"
	"io"
	"time"
)

// Magic is the two-byte MIT keytab file signature (spec.md §4.E).
var Magic = [2]byte{0x05, 0x02}

// WriteOptions controls record-level encoding choices.
type WriteOptions struct {
	// Force32BitKvno always emits the trailing 32-bit KVNO field, even
	// for entries whose KVNO fits in 8 bits (spec.md §9 Open Question 2).
	Force32BitKvno bool
	// Now overrides the timestamp used for entries whose Timestamp
	// field is zero, for reproducible output (spec.md §4.E). Defaults
	// to the wall clock.
	Now func() time.Time
}

func (o WriteOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Write encodes k as an MIT 0x0502 keytab. Entries are emitted in the
// order they appear in k.Entries (spec.md §4.E "Ordering").
func Write(k *Keytab, opts WriteOptions) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(Magic[:])

	for _, e := range k.Entries {
		rec, err := encodeRecord(e, opts)
		if err != nil {
			return nil, err
		}
		buf.Write(rec)
	}
	return buf.Bytes(), nil
}

func encodeRecord(e KeytabEntry, opts WriteOptions) ([]byte, error) {
	info, ok := EtypeByCode(e.Etype)
	if ok && len(e.Key) != info.KeyLen {
		return nil, newKeyLengthMismatch(e.Etype, info.KeyLen, len(e.Key))
	}

	var body bytes.Buffer

	if err := writeUint16(&body, uint16(len(e.Principal.Components))); err != nil {
		return nil, err
	}
	if err := writeLenPrefixedString(&body, e.Principal.Realm); err != nil {
		return nil, err
	}
	for _, c := range e.Principal.Components {
		if err := writeLenPrefixedString(&body, c); err != nil {
			return nil, err
		}
	}

	if err := writeUint32(&body, uint32(e.Principal.NameType)); err != nil {
		return nil, err
	}

	ts := e.Timestamp
	if ts == 0 {
		ts = opts.now().Unix()
	}
	if err := writeUint32(&body, uint32(ts)); err != nil {
		return nil, err
	}

	use32 := e.KVNO > 255 || opts.Force32BitKvno
	if use32 {
		body.WriteByte(0)
	} else {
		body.WriteByte(byte(e.KVNO))
	}

	if err := writeUint16(&body, e.Etype); err != nil {
		return nil, err
	}
	if err := writeUint16(&body, uint16(len(e.Key))); err != nil {
		return nil, err
	}
	body.Write(e.Key)

	if use32 {
		if err := writeUint32(&body, e.KVNO); err != nil {
			return nil, err
		}
	}

	var rec bytes.Buffer
	if err := writeInt32(&rec, int32(body.Len())); err != nil {
		return nil, err
	}
	rec.Write(body.Bytes())
	return rec.Bytes(), nil
}

// Read parses an MIT 0x0502 keytab from data. Parsing is tolerant per
// spec.md §4.E: negative-size records are skipped as "holes", a
// trailing 32-bit KVNO is consumed whenever the declared record size
// leaves exactly 4 bytes after the mandatory fields and key, any
// further trailing bytes are discarded, and unknown etype/name-type
// values are preserved rather than rejected. Corrupt records fail with
// a MalformedKeytab error carrying the byte offset.
func Read(data []byte) (*Keytab, error) {
	if len(data) < 2 {
		return nil, newMalformed(0, "file shorter than magic")
	}
	if data[0] != Magic[0] || data[1] != Magic[1] {
		return nil, newMalformed(0, "bad magic")
	}

	k := &Keytab{}
	off := int64(2)
	buf := data[2:]

	for len(buf) > 0 {
		if len(buf) < 4 {
			return nil, newMalformed(off, "truncated record size")
		}
		size := int32(binary.BigEndian.Uint32(buf))
		buf = buf[4:]
		off += 4

		if size < 0 {
			hole := int(-size)
			if hole > len(buf) {
				return nil, newMalformed(off, "hole extends past end of file")
			}
			buf = buf[hole:]
			off += int64(hole)
			continue
		}

		recLen := int(size)
		if recLen > len(buf) {
			return nil, newMalformed(off, "record size overruns file")
		}
		recBytes := buf[:recLen]
		entry, err := decodeRecord(recBytes, off)
		if err != nil {
			return nil, err
		}
		k.Entries = append(k.Entries, entry)

		buf = buf[recLen:]
		off += int64(recLen)
	}

	return k, nil
}

func decodeRecord(rec []byte, baseOffset int64) (KeytabEntry, error) {
	r := bytes.NewReader(rec)

	numComponents, err := readUint16(r, baseOffset)
	if err != nil {
		return KeytabEntry{}, err
	}
	realm, err := readLenPrefixedString(r, baseOffset)
	if err != nil {
		return KeytabEntry{}, err
	}

	components := make([]string, 0, numComponents)
	for i := uint16(0); i < numComponents; i++ {
		c, err := readLenPrefixedString(r, baseOffset)
		if err != nil {
			return KeytabEntry{}, err
		}
		components = append(components, c)
	}
	if len(components) == 0 {
		return KeytabEntry{}, newMalformed(baseOffset, "record has zero name components")
	}

	nameType, err := readUint32(r, baseOffset)
	if err != nil {
		return KeytabEntry{}, err
	}
	timestamp, err := readUint32(r, baseOffset)
	if err != nil {
		return KeytabEntry{}, err
	}
	kvno8, err := r.ReadByte()
	if err != nil {
		return KeytabEntry{}, newMalformed(baseOffset, "truncated kvno8")
	}
	etype, err := readUint16(r, baseOffset)
	if err != nil {
		return KeytabEntry{}, err
	}
	keyLen, err := readUint16(r, baseOffset)
	if err != nil {
		return KeytabEntry{}, err
	}
	key := make([]byte, keyLen)
	if _, err := io.ReadFull(r, key); err != nil {
		return KeytabEntry{}, newMalformed(baseOffset, "truncated key bytes")
	}

	kvno := uint32(kvno8)
	if r.Len() == 4 {
		kvno32, err := readUint32(r, baseOffset)
		if err != nil {
			return KeytabEntry{}, err
		}
		kvno = kvno32
	}
	// Any further trailing bytes (r.Len() > 0 here) are tolerated and discarded.

	return KeytabEntry{
		Principal: Principal{Realm: realm, Components: components, NameType: NameType(nameType)},
		Etype:     etype,
		KVNO:      kvno,
		Key:       key,
		Timestamp: int64(timestamp),
	}, nil
}

func writeUint16(w *bytes.Buffer, v uint16) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func writeUint32(w *bytes.Buffer, v uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func writeInt32(w *bytes.Buffer, v int32) error {
	return writeUint32(w, uint32(v))
}

func writeLenPrefixedString(w *bytes.Buffer, s string) error {
	if err := writeUint16(w, uint16(len(s))); err != nil {
		return err
	}
	_, err := w.WriteString(s)
	return err
}

func readUint16(r *bytes.Reader, baseOffset int64) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, newMalformed(baseOffset, "truncated uint16 field")
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

func readUint32(r *bytes.Reader, baseOffset int64) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, newMalformed(baseOffset, "truncated uint32 field")
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

func readLenPrefixedString(r *bytes.Reader, baseOffset int64) (string, error) {
	n, err := readUint16(r, baseOffset)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", newMalformed(baseOffset, "component length overruns record")
	}
	return string(buf), nil
}
