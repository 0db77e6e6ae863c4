// Package packet defines the handshake, status and login packet catalogue and
// the (state, direction, id) registry that resolves them.
//
// The catalogue only describes which packet shapes are legal in each state.
// Moving a connection between states is left to the session layer.
package packet

import (
	"fmt"
	"strings"

	"github.com/danmuck/mcwire/internal/protocol"
)

// Packet is one protocol message. Every packet both encodes and decodes.
type Packet interface {
	protocol.Codec
}

// State is the connection phase that decides which packets are legal.
type State uint8

const (
	StateHandshake State = iota
	StateStatus
	StateLogin
)

var stateNames = [...]string{
	StateHandshake: "handshake",
	StateStatus:    "status",
	StateLogin:     "login",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// States lists every state in catalogue order.
func States() []State {
	return []State{StateHandshake, StateStatus, StateLogin}
}

func ParseState(raw string) (State, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for i, n := range stateNames {
		if n == name {
			return State(i), nil
		}
	}
	return 0, fmt.Errorf("packet: unknown state %q", raw)
}

// Direction is the side a packet travels towards.
type Direction uint8

const (
	Clientbound Direction = iota
	Serverbound
)

func (d Direction) String() string {
	switch d {
	case Clientbound:
		return "clientbound"
	case Serverbound:
		return "serverbound"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// Directions lists both directions, clientbound first.
func Directions() []Direction {
	return []Direction{Clientbound, Serverbound}
}

func ParseDirection(raw string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "clientbound", "client", "s2c":
		return Clientbound, nil
	case "serverbound", "server", "c2s":
		return Serverbound, nil
	default:
		return 0, fmt.Errorf("packet: unknown direction %q", raw)
	}
}
