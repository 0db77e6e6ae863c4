package frame

import (
	"errors"
	"fmt"
	"io"

	"github.com/danmuck/mcwire/internal/protocol"
)

// DefaultMaxFrameLen is the largest length a 3-group VarInt can declare.
const DefaultMaxFrameLen = 1<<21 - 1

var (
	ErrIncompleteFrame = errors.New("frame: incomplete frame")
	ErrFrameTooLarge   = errors.New("frame: frame too large")
	ErrInvalidLength   = errors.New("frame: invalid frame length")
)

// Frame is one uncompressed packet on the wire:
// VarInt length(id + body), VarInt packet id, body.
type Frame struct {
	ID   int32
	Body []byte
}

// ByteLen is the full encoded size including the length prefix.
func (f Frame) ByteLen() int {
	n := f.payloadLen()
	return protocol.VarInt(n).ByteLen() + n
}

func (f Frame) payloadLen() int {
	return protocol.VarInt(f.ID).ByteLen() + len(f.Body)
}

// Limits constrains frame decode/encode memory use.
type Limits struct {
	MaxFrameLen int
}

func DefaultLimits() Limits {
	return Limits{MaxFrameLen: DefaultMaxFrameLen}
}

// Split parses one frame from the front of buf and reports how many bytes it
// used. ErrIncompleteFrame means buf holds a prefix of a valid frame and the
// caller should retry with more bytes; every other error is terminal.
func Split(buf []byte, limits Limits) (Frame, int, error) {
	length, k, err := protocol.ConsumeVarInt(buf)
	if errors.Is(err, protocol.ErrUnexpectedEOF) {
		return Frame{}, 0, ErrIncompleteFrame
	}
	if err != nil {
		return Frame{}, 0, err
	}
	if err := checkLength(int(length), limits); err != nil {
		return Frame{}, 0, err
	}
	if len(buf)-k < int(length) {
		return Frame{}, 0, ErrIncompleteFrame
	}
	f, err := parsePayload(buf[k : k+int(length)])
	if err != nil {
		return Frame{}, 0, err
	}
	return f, k + int(length), nil
}

// ReadFrame reads one frame from r. It returns io.EOF when r ends on a frame
// boundary and ErrIncompleteFrame when r ends inside a frame.
func ReadFrame(r io.Reader, limits Limits) (Frame, error) {
	length, err := readLength(r)
	if err != nil {
		return Frame{}, err
	}
	if err := checkLength(length, limits); err != nil {
		return Frame{}, err
	}
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return Frame{}, ErrIncompleteFrame
		}
		return Frame{}, err
	}
	return parsePayload(payload)
}

// WriteFrame writes f to w in a single call.
func WriteFrame(w io.Writer, f Frame, limits Limits) error {
	n := f.payloadLen()
	if n > limits.MaxFrameLen {
		return fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, n, limits.MaxFrameLen)
	}
	_, err := w.Write(Append(make([]byte, 0, f.ByteLen()), f))
	return err
}

// Append appends the encoding of f to dst without checking limits.
func Append(dst []byte, f Frame) []byte {
	dst = protocol.AppendVarInt(dst, int32(f.payloadLen()))
	dst = protocol.AppendVarInt(dst, f.ID)
	return append(dst, f.Body...)
}

func checkLength(n int, limits Limits) error {
	if n <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	if n > limits.MaxFrameLen {
		return fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, n, limits.MaxFrameLen)
	}
	return nil
}

func readLength(r io.Reader) (int, error) {
	var buf [protocol.MaxVarIntLen]byte
	for i := 0; i < len(buf); i++ {
		if _, err := io.ReadFull(r, buf[i:i+1]); err != nil {
			if i == 0 && errors.Is(err, io.EOF) {
				return 0, io.EOF
			}
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return 0, ErrIncompleteFrame
			}
			return 0, err
		}
		if buf[i]&0x80 == 0 {
			v, _, err := protocol.ConsumeVarInt(buf[:i+1])
			return int(v), err
		}
	}
	return 0, protocol.ErrMalformedVarInt
}

func parsePayload(payload []byte) (Frame, error) {
	id, n, err := protocol.ConsumeVarInt(payload)
	if errors.Is(err, protocol.ErrUnexpectedEOF) {
		return Frame{}, fmt.Errorf("%w: packet id overruns frame", ErrInvalidLength)
	}
	if err != nil {
		return Frame{}, err
	}
	body := make([]byte, len(payload)-n)
	copy(body, payload[n:])
	return Frame{ID: id, Body: body}, nil
}
