package packet

import (
	"io"

	"github.com/danmuck/mcwire/internal/protocol"
	"github.com/google/uuid"
)

// Property is one signed profile property attached to LoginSuccess.
type Property struct {
	Name      string
	Value     string
	Signature protocol.OptionalString
}

func (p *Property) fields() []protocol.Codec {
	return []protocol.Codec{
		(*protocol.String)(&p.Name),
		(*protocol.String)(&p.Value),
		&p.Signature,
	}
}

func (p *Property) ByteLen() int             { return protocol.LenAll(p.fields()...) }
func (p *Property) Encode(w io.Writer) error { return protocol.EncodeAll(w, p.fields()...) }
func (p *Property) Decode(r io.Reader) error { return protocol.DecodeAll(r, p.fields()...) }

type properties = protocol.PrefixedSlice[protocol.VarInt, *protocol.VarInt, Property, *Property]

// Clientbound login packets.

// Disconnect ends the login with a reason.
type Disconnect struct {
	Reason string
}

func (p *Disconnect) fields() []protocol.Codec {
	return []protocol.Codec{(*protocol.String)(&p.Reason)}
}

func (p *Disconnect) ByteLen() int             { return protocol.LenAll(p.fields()...) }
func (p *Disconnect) Encode(w io.Writer) error { return protocol.EncodeAll(w, p.fields()...) }
func (p *Disconnect) Decode(r io.Reader) error { return protocol.DecodeAll(r, p.fields()...) }

type EncryptionRequest struct {
	ServerID           string
	PublicKey          []byte
	VerifyToken        []byte
	ShouldAuthenticate bool
}

func (p *EncryptionRequest) fields() []protocol.Codec {
	return []protocol.Codec{
		(*protocol.String)(&p.ServerID),
		(*protocol.ByteArray)(&p.PublicKey),
		(*protocol.ByteArray)(&p.VerifyToken),
		(*protocol.Bool)(&p.ShouldAuthenticate),
	}
}

func (p *EncryptionRequest) ByteLen() int             { return protocol.LenAll(p.fields()...) }
func (p *EncryptionRequest) Encode(w io.Writer) error { return protocol.EncodeAll(w, p.fields()...) }
func (p *EncryptionRequest) Decode(r io.Reader) error { return protocol.DecodeAll(r, p.fields()...) }

type LoginSuccess struct {
	UUID                uuid.UUID
	Username            string
	Properties          []Property
	StrictErrorHandling bool
}

func (p *LoginSuccess) fields() []protocol.Codec {
	return []protocol.Codec{
		(*protocol.UUID)(&p.UUID),
		(*protocol.String)(&p.Username),
		(*properties)(&p.Properties),
		(*protocol.Bool)(&p.StrictErrorHandling),
	}
}

func (p *LoginSuccess) ByteLen() int             { return protocol.LenAll(p.fields()...) }
func (p *LoginSuccess) Encode(w io.Writer) error { return protocol.EncodeAll(w, p.fields()...) }
func (p *LoginSuccess) Decode(r io.Reader) error { return protocol.DecodeAll(r, p.fields()...) }

// SetCompression announces the compression threshold. A negative value
// disables compression.
type SetCompression struct {
	Threshold int32
}

func (p *SetCompression) fields() []protocol.Codec {
	return []protocol.Codec{(*protocol.VarInt)(&p.Threshold)}
}

func (p *SetCompression) ByteLen() int             { return protocol.LenAll(p.fields()...) }
func (p *SetCompression) Encode(w io.Writer) error { return protocol.EncodeAll(w, p.fields()...) }
func (p *SetCompression) Decode(r io.Reader) error { return protocol.DecodeAll(r, p.fields()...) }

// LoginPluginRequest carries an opaque plugin-channel payload to the end of the packet.
type LoginPluginRequest struct {
	MessageID int32
	Channel   string
	Data      []byte
}

func (p *LoginPluginRequest) fields() []protocol.Codec {
	return []protocol.Codec{
		(*protocol.VarInt)(&p.MessageID),
		(*protocol.String)(&p.Channel),
		(*protocol.RemainingBytes)(&p.Data),
	}
}

func (p *LoginPluginRequest) ByteLen() int             { return protocol.LenAll(p.fields()...) }
func (p *LoginPluginRequest) Encode(w io.Writer) error { return protocol.EncodeAll(w, p.fields()...) }
func (p *LoginPluginRequest) Decode(r io.Reader) error { return protocol.DecodeAll(r, p.fields()...) }

type CookieRequest struct {
	Key string
}

func (p *CookieRequest) fields() []protocol.Codec {
	return []protocol.Codec{(*protocol.String)(&p.Key)}
}

func (p *CookieRequest) ByteLen() int             { return protocol.LenAll(p.fields()...) }
func (p *CookieRequest) Encode(w io.Writer) error { return protocol.EncodeAll(w, p.fields()...) }
func (p *CookieRequest) Decode(r io.Reader) error { return protocol.DecodeAll(r, p.fields()...) }

// Serverbound login packets.

type LoginStart struct {
	Name string
	UUID uuid.UUID
}

func (p *LoginStart) fields() []protocol.Codec {
	return []protocol.Codec{
		(*protocol.String)(&p.Name),
		(*protocol.UUID)(&p.UUID),
	}
}

func (p *LoginStart) ByteLen() int             { return protocol.LenAll(p.fields()...) }
func (p *LoginStart) Encode(w io.Writer) error { return protocol.EncodeAll(w, p.fields()...) }
func (p *LoginStart) Decode(r io.Reader) error { return protocol.DecodeAll(r, p.fields()...) }

type EncryptionResponse struct {
	SharedSecret []byte
	VerifyToken  []byte
}

func (p *EncryptionResponse) fields() []protocol.Codec {
	return []protocol.Codec{
		(*protocol.ByteArray)(&p.SharedSecret),
		(*protocol.ByteArray)(&p.VerifyToken),
	}
}

func (p *EncryptionResponse) ByteLen() int             { return protocol.LenAll(p.fields()...) }
func (p *EncryptionResponse) Encode(w io.Writer) error { return protocol.EncodeAll(w, p.fields()...) }
func (p *EncryptionResponse) Decode(r io.Reader) error { return protocol.DecodeAll(r, p.fields()...) }

type LoginPluginResponse struct {
	MessageID int32
	Success   bool
	Data      []byte
}

func (p *LoginPluginResponse) fields() []protocol.Codec {
	return []protocol.Codec{
		(*protocol.VarInt)(&p.MessageID),
		(*protocol.Bool)(&p.Success),
		(*protocol.RemainingBytes)(&p.Data),
	}
}

func (p *LoginPluginResponse) ByteLen() int             { return protocol.LenAll(p.fields()...) }
func (p *LoginPluginResponse) Encode(w io.Writer) error { return protocol.EncodeAll(w, p.fields()...) }
func (p *LoginPluginResponse) Decode(r io.Reader) error { return protocol.DecodeAll(r, p.fields()...) }

// LoginAcknowledged ends the login state. It has no fields.
type LoginAcknowledged struct{}

func (*LoginAcknowledged) ByteLen() int           { return 0 }
func (*LoginAcknowledged) Encode(io.Writer) error { return nil }
func (*LoginAcknowledged) Decode(io.Reader) error { return nil }

type CookieResponse struct {
	Key     string
	Payload protocol.OptionalByteArray
}

func (p *CookieResponse) fields() []protocol.Codec {
	return []protocol.Codec{
		(*protocol.String)(&p.Key),
		&p.Payload,
	}
}

func (p *CookieResponse) ByteLen() int             { return protocol.LenAll(p.fields()...) }
func (p *CookieResponse) Encode(w io.Writer) error { return protocol.EncodeAll(w, p.fields()...) }
func (p *CookieResponse) Decode(r io.Reader) error { return protocol.DecodeAll(r, p.fields()...) }
