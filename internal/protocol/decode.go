package protocol

import (
	"bytes"
	"io"
)

// Unmarshal decodes d from the start of b. Bytes after the value are ignored.
func Unmarshal(b []byte, d Decoder) error {
	return d.Decode(bytes.NewReader(b))
}

// DecodeAll reads fields from r in order and stops at the first failure.
func DecodeAll(r io.Reader, fields ...Codec) error {
	for _, field := range fields {
		if err := field.Decode(r); err != nil {
			return err
		}
	}
	return nil
}

func readFull(r io.Reader, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	if _, err := io.ReadFull(r, buf); err != nil {
		return readErr(err)
	}
	return nil
}

func readByte(r io.Reader) (byte, error) {
	if br, ok := r.(io.ByteReader); ok {
		b, err := br.ReadByte()
		if err != nil {
			return 0, readErr(err)
		}
		return b, nil
	}
	var buf [1]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}
