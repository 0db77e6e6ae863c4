package packet

import (
	"errors"
	"fmt"
)

var (
	ErrTrailingBytes      = errors.New("packet: trailing bytes after packet")
	ErrUnregisteredPacket = errors.New("packet: packet type not registered")
)

// UnknownPacketError reports an id with no catalogue entry in its state and direction.
type UnknownPacketError struct {
	Key Key
}

func (e *UnknownPacketError) Error() string {
	return fmt.Sprintf("packet: unknown packet %s", e.Key)
}

// DecodeError wraps a codec failure with the packet it happened in.
type DecodeError struct {
	Key  Key
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("packet: decode %s (%s): %v", e.Name, e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RegistryError rejects a descriptor table at construction.
type RegistryError struct {
	Key    Key
	Name   string
	Reason string
}

func (e *RegistryError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("packet: registry %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("packet: registry %s (%s): %s", e.Key, e.Name, e.Reason)
}
