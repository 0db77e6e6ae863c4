package protocol

import (
	"bytes"
	"io"
)

// Encoder is implemented by every value with a wire form.
// ByteLen reports the exact encoded size without encoding.
type Encoder interface {
	ByteLen() int
	Encode(w io.Writer) error
}

// Decoder fills the receiver from r.
type Decoder interface {
	Decode(r io.Reader) error
}

// Codec is the combined encode and decode capability.
type Codec interface {
	Encoder
	Decoder
}

// Ptr constrains P to *T where *T is a Codec, so generic containers can
// decode into zero values of T.
type Ptr[T any] interface {
	*T
	Codec
}

// Marshal encodes e into a new buffer sized by e.ByteLen.
func Marshal(e Encoder) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, e.ByteLen()))
	if err := e.Encode(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeAll writes fields to w in order.
func EncodeAll(w io.Writer, fields ...Codec) error {
	for _, field := range fields {
		if err := field.Encode(w); err != nil {
			return err
		}
	}
	return nil
}

// LenAll sums the encoded size of fields.
func LenAll(fields ...Codec) int {
	total := 0
	for _, field := range fields {
		total += field.ByteLen()
	}
	return total
}

func writeAll(w io.Writer, b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if _, err := w.Write(b); err != nil {
		return writeErr(err)
	}
	return nil
}
