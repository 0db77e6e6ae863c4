package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Bool is a single byte, 0 or 1.
type Bool bool

func (Bool) ByteLen() int { return 1 }

func (v Bool) Encode(w io.Writer) error {
	b := byte(0)
	if v {
		b = 1
	}
	return writeAll(w, []byte{b})
}

func (v *Bool) Decode(r io.Reader) error {
	b, err := readByte(r)
	if err != nil {
		return err
	}
	switch b {
	case 0:
		*v = false
	case 1:
		*v = true
	default:
		return fmt.Errorf("%w: 0x%02x", ErrInvalidBoolean, b)
	}
	return nil
}

// Fixed-width integers and floats, big-endian at their native width.
type (
	Int8    int8
	Uint8   uint8
	Int16   int16
	Uint16  uint16
	Int32   int32
	Uint32  uint32
	Int64   int64
	Uint64  uint64
	Float32 float32
	Float64 float64
)

func (Int8) ByteLen() int               { return 1 }
func (v Int8) Encode(w io.Writer) error { return writeAll(w, []byte{byte(v)}) }
func (v *Int8) Decode(r io.Reader) error {
	b, err := readByte(r)
	*v = Int8(b)
	return err
}

func (Uint8) ByteLen() int               { return 1 }
func (v Uint8) Encode(w io.Writer) error { return writeAll(w, []byte{byte(v)}) }
func (v *Uint8) Decode(r io.Reader) error {
	b, err := readByte(r)
	*v = Uint8(b)
	return err
}

func (Int16) ByteLen() int               { return 2 }
func (v Int16) Encode(w io.Writer) error { return writeUint16(w, uint16(v)) }
func (v *Int16) Decode(r io.Reader) error {
	u, err := readUint16(r)
	*v = Int16(u)
	return err
}

func (Uint16) ByteLen() int               { return 2 }
func (v Uint16) Encode(w io.Writer) error { return writeUint16(w, uint16(v)) }
func (v *Uint16) Decode(r io.Reader) error {
	u, err := readUint16(r)
	*v = Uint16(u)
	return err
}

func (Int32) ByteLen() int               { return 4 }
func (v Int32) Encode(w io.Writer) error { return writeUint32(w, uint32(v)) }
func (v *Int32) Decode(r io.Reader) error {
	u, err := readUint32(r)
	*v = Int32(u)
	return err
}

func (Uint32) ByteLen() int               { return 4 }
func (v Uint32) Encode(w io.Writer) error { return writeUint32(w, uint32(v)) }
func (v *Uint32) Decode(r io.Reader) error {
	u, err := readUint32(r)
	*v = Uint32(u)
	return err
}

func (Int64) ByteLen() int               { return 8 }
func (v Int64) Encode(w io.Writer) error { return writeUint64(w, uint64(v)) }
func (v *Int64) Decode(r io.Reader) error {
	u, err := readUint64(r)
	*v = Int64(u)
	return err
}

func (Uint64) ByteLen() int               { return 8 }
func (v Uint64) Encode(w io.Writer) error { return writeUint64(w, uint64(v)) }
func (v *Uint64) Decode(r io.Reader) error {
	u, err := readUint64(r)
	*v = Uint64(u)
	return err
}

func (Float32) ByteLen() int { return 4 }
func (v Float32) Encode(w io.Writer) error {
	return writeUint32(w, math.Float32bits(float32(v)))
}
func (v *Float32) Decode(r io.Reader) error {
	u, err := readUint32(r)
	*v = Float32(math.Float32frombits(u))
	return err
}

func (Float64) ByteLen() int { return 8 }
func (v Float64) Encode(w io.Writer) error {
	return writeUint64(w, math.Float64bits(float64(v)))
}
func (v *Float64) Decode(r io.Reader) error {
	u, err := readUint64(r)
	*v = Float64(math.Float64frombits(u))
	return err
}

// Count and SetCount let fixed-width integers serve as length prefixes.

func (v Uint8) Count() int       { return int(v) }
func (v *Uint8) SetCount(n int)  { *v = Uint8(n) }
func (v Uint16) Count() int      { return int(v) }
func (v *Uint16) SetCount(n int) { *v = Uint16(n) }
func (v Int32) Count() int       { return int(v) }
func (v *Int32) SetCount(n int)  { *v = Int32(n) }
func (v Int64) Count() int       { return int(v) }
func (v *Int64) SetCount(n int)  { *v = Int64(n) }

func writeUint16(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	return writeAll(w, buf[:])
}

func writeUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return writeAll(w, buf[:])
}

func writeUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return writeAll(w, buf[:])
}

func readUint16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}
