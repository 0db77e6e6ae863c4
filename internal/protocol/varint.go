package protocol

import "io"

const (
	// MaxVarIntLen is the group limit for a 32-bit VarInt.
	MaxVarIntLen = 5
	// MaxVarLongLen is the group limit for a 64-bit VarLong.
	MaxVarLongLen = 10

	segmentBits = 0x7f
	continueBit = 0x80
)

// VarInt is an int32 sent as base-128 groups, least significant first.
// Negative values always take MaxVarIntLen groups.
type VarInt int32

// VarLong is the int64 counterpart of VarInt.
type VarLong int64

func (v VarInt) ByteLen() int {
	u := uint32(v)
	for i := 1; i < MaxVarIntLen; i++ {
		if u>>(7*i) == 0 {
			return i
		}
	}
	return MaxVarIntLen
}

func (v VarInt) Encode(w io.Writer) error {
	var buf [MaxVarIntLen]byte
	return writeAll(w, AppendVarInt(buf[:0], int32(v)))
}

func (v *VarInt) Decode(r io.Reader) error {
	var u uint32
	for i := 0; i < MaxVarIntLen; i++ {
		b, err := readByte(r)
		if err != nil {
			return err
		}
		u |= uint32(b&segmentBits) << (7 * i)
		if b&continueBit == 0 {
			*v = VarInt(u)
			return nil
		}
	}
	return ErrMalformedVarInt
}

func (v VarInt) Count() int       { return int(v) }
func (v *VarInt) SetCount(n int)  { *v = VarInt(n) }
func (v VarLong) Count() int      { return int(v) }
func (v *VarLong) SetCount(n int) { *v = VarLong(n) }

func (v VarLong) ByteLen() int {
	u := uint64(v)
	for i := 1; i < MaxVarLongLen; i++ {
		if u>>(7*i) == 0 {
			return i
		}
	}
	return MaxVarLongLen
}

func (v VarLong) Encode(w io.Writer) error {
	var buf [MaxVarLongLen]byte
	return writeAll(w, AppendVarLong(buf[:0], int64(v)))
}

func (v *VarLong) Decode(r io.Reader) error {
	var u uint64
	for i := 0; i < MaxVarLongLen; i++ {
		b, err := readByte(r)
		if err != nil {
			return err
		}
		u |= uint64(b&segmentBits) << (7 * i)
		if b&continueBit == 0 {
			*v = VarLong(u)
			return nil
		}
	}
	return ErrMalformedVarLong
}

// AppendVarInt appends the encoding of v to dst.
func AppendVarInt(dst []byte, v int32) []byte {
	u := uint32(v)
	for u&^segmentBits != 0 {
		dst = append(dst, byte(u&segmentBits)|continueBit)
		u >>= 7
	}
	return append(dst, byte(u))
}

// AppendVarLong appends the encoding of v to dst.
func AppendVarLong(dst []byte, v int64) []byte {
	u := uint64(v)
	for u&^segmentBits != 0 {
		dst = append(dst, byte(u&segmentBits)|continueBit)
		u >>= 7
	}
	return append(dst, byte(u))
}

// ConsumeVarInt decodes a VarInt from the front of buf and reports how many
// bytes it used. A buffer that ends mid-value returns ErrUnexpectedEOF, which
// callers holding a partial stream may retry once more bytes arrive.
func ConsumeVarInt(buf []byte) (int32, int, error) {
	var u uint32
	for i := 0; i < MaxVarIntLen; i++ {
		if i >= len(buf) {
			return 0, 0, ErrUnexpectedEOF
		}
		b := buf[i]
		u |= uint32(b&segmentBits) << (7 * i)
		if b&continueBit == 0 {
			return int32(u), i + 1, nil
		}
	}
	return 0, 0, ErrMalformedVarInt
}
