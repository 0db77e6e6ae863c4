package packet

import (
	"io"

	"github.com/danmuck/mcwire/internal/protocol"
)

// StatusRequest asks for the server list status. It has no fields.
type StatusRequest struct{}

func (*StatusRequest) ByteLen() int           { return 0 }
func (*StatusRequest) Encode(io.Writer) error { return nil }
func (*StatusRequest) Decode(io.Reader) error { return nil }

// PingRequest carries a client timestamp to be echoed back.
type PingRequest struct {
	Timestamp int64
}

func (p *PingRequest) fields() []protocol.Codec {
	return []protocol.Codec{(*protocol.Int64)(&p.Timestamp)}
}

func (p *PingRequest) ByteLen() int             { return protocol.LenAll(p.fields()...) }
func (p *PingRequest) Encode(w io.Writer) error { return protocol.EncodeAll(w, p.fields()...) }
func (p *PingRequest) Decode(r io.Reader) error { return protocol.DecodeAll(r, p.fields()...) }

// StatusResponse carries the server list status JSON.
type StatusResponse struct {
	Status string
}

func (p *StatusResponse) fields() []protocol.Codec {
	return []protocol.Codec{(*protocol.String)(&p.Status)}
}

func (p *StatusResponse) ByteLen() int             { return protocol.LenAll(p.fields()...) }
func (p *StatusResponse) Encode(w io.Writer) error { return protocol.EncodeAll(w, p.fields()...) }
func (p *StatusResponse) Decode(r io.Reader) error { return protocol.DecodeAll(r, p.fields()...) }

// PongResponse echoes the PingRequest timestamp.
type PongResponse struct {
	Timestamp int64
}

func (p *PongResponse) fields() []protocol.Codec {
	return []protocol.Codec{(*protocol.Int64)(&p.Timestamp)}
}

func (p *PongResponse) ByteLen() int             { return protocol.LenAll(p.fields()...) }
func (p *PongResponse) Encode(w io.Writer) error { return protocol.EncodeAll(w, p.fields()...) }
func (p *PongResponse) Decode(r io.Reader) error { return protocol.DecodeAll(r, p.fields()...) }
