package protocol

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxStringLen is the largest byte length a String may declare.
const MaxStringLen = 32767

// String is UTF-8 text behind a VarInt byte length.
type String string

func (s String) ByteLen() int {
	return VarInt(len(s)).ByteLen() + len(s)
}

func (s String) Encode(w io.Writer) error {
	if len(s) > MaxStringLen {
		return fmt.Errorf("%w: %d > %d bytes", ErrStringTooLong, len(s), MaxStringLen)
	}
	if !utf8.ValidString(string(s)) {
		return ErrInvalidUTF8
	}
	if err := VarInt(len(s)).Encode(w); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, string(s)); err != nil {
		return writeErr(err)
	}
	return nil
}

// Decode checks the declared length before reading the body.
func (s *String) Decode(r io.Reader) error {
	var n VarInt
	if err := n.Decode(r); err != nil {
		return err
	}
	if n < 0 || n > MaxStringLen {
		return fmt.Errorf("%w: declared %d > %d bytes", ErrStringTooLong, n, MaxStringLen)
	}
	buf := make([]byte, n)
	if err := readFull(r, buf); err != nil {
		return err
	}
	if !utf8.Valid(buf) {
		return ErrInvalidUTF8
	}
	*s = String(buf)
	return nil
}

// UUID is a 128-bit identifier sent as 16 raw big-endian bytes.
type UUID uuid.UUID

func (UUID) ByteLen() int { return 16 }

func (u UUID) Encode(w io.Writer) error {
	return writeAll(w, u[:])
}

func (u *UUID) Decode(r io.Reader) error {
	return readFull(r, u[:])
}

func (u UUID) String() string {
	return uuid.UUID(u).String()
}
