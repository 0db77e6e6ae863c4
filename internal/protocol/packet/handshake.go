package packet

import (
	"fmt"
	"io"

	"github.com/danmuck/mcwire/internal/protocol"
)

// Intent is the handshake's next-state selector.
type Intent int32

const (
	IntentStatus   Intent = 1
	IntentLogin    Intent = 2
	IntentTransfer Intent = 3
)

// State reports the state a session layer moves to after this intent.
func (i Intent) State() (State, bool) {
	switch i {
	case IntentStatus:
		return StateStatus, true
	case IntentLogin, IntentTransfer:
		return StateLogin, true
	default:
		return 0, false
	}
}

func (i Intent) String() string {
	switch i {
	case IntentStatus:
		return "status"
	case IntentLogin:
		return "login"
	case IntentTransfer:
		return "transfer"
	default:
		return fmt.Sprintf("intent(%d)", int32(i))
	}
}

func ParseIntent(raw string) (Intent, error) {
	for _, i := range []Intent{IntentStatus, IntentLogin, IntentTransfer} {
		if i.String() == raw {
			return i, nil
		}
	}
	return 0, fmt.Errorf("packet: unknown intent %q", raw)
}

// Handshake opens every connection.
type Handshake struct {
	ProtocolVersion int32
	ServerAddress   string
	ServerPort      uint16
	NextState       Intent
}

func (p *Handshake) fields() []protocol.Codec {
	return []protocol.Codec{
		(*protocol.VarInt)(&p.ProtocolVersion),
		(*protocol.String)(&p.ServerAddress),
		(*protocol.Uint16)(&p.ServerPort),
		(*protocol.VarInt)(&p.NextState),
	}
}

func (p *Handshake) ByteLen() int             { return protocol.LenAll(p.fields()...) }
func (p *Handshake) Encode(w io.Writer) error { return protocol.EncodeAll(w, p.fields()...) }
func (p *Handshake) Decode(r io.Reader) error { return protocol.DecodeAll(r, p.fields()...) }
