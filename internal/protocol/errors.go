package protocol

import (
	"errors"
	"fmt"
	"io"
)

var (
	ErrUnexpectedEOF    = errors.New("protocol: unexpected eof")
	ErrMalformedVarInt  = errors.New("protocol: varint exceeds 5 groups")
	ErrMalformedVarLong = errors.New("protocol: varlong exceeds 10 groups")
	ErrInvalidBoolean   = errors.New("protocol: invalid boolean value")
	ErrStringTooLong    = errors.New("protocol: string too long")
	ErrInvalidUTF8      = errors.New("protocol: invalid utf-8")
	ErrSequenceTooLong  = errors.New("protocol: sequence too long")
)

// IOError is a failure of the underlying stream other than running out of bytes.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("protocol: %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func readErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrUnexpectedEOF
	}
	return &IOError{Op: "read", Err: err}
}

func writeErr(err error) error {
	return &IOError{Op: "write", Err: err}
}
