package packet

// describe builds a descriptor whose constructor returns a fresh *T.
func describe[T any, P interface {
	*T
	Packet
}](state State, dir Direction, id int32, name string) Descriptor {
	return Descriptor{
		Key:  Key{State: state, Direction: dir, ID: id},
		Name: name,
		New:  func() Packet { return P(new(T)) },
	}
}

// Catalogue lists every handshake, status and login packet of protocol 766.
func Catalogue() []Descriptor {
	return []Descriptor{
		describe[Handshake](StateHandshake, Serverbound, 0x00, "Handshake"),

		describe[StatusResponse](StateStatus, Clientbound, 0x00, "StatusResponse"),
		describe[PongResponse](StateStatus, Clientbound, 0x01, "PongResponse"),
		describe[StatusRequest](StateStatus, Serverbound, 0x00, "StatusRequest"),
		describe[PingRequest](StateStatus, Serverbound, 0x01, "PingRequest"),

		describe[Disconnect](StateLogin, Clientbound, 0x00, "Disconnect"),
		describe[EncryptionRequest](StateLogin, Clientbound, 0x01, "EncryptionRequest"),
		describe[LoginSuccess](StateLogin, Clientbound, 0x02, "LoginSuccess"),
		describe[SetCompression](StateLogin, Clientbound, 0x03, "SetCompression"),
		describe[LoginPluginRequest](StateLogin, Clientbound, 0x04, "LoginPluginRequest"),
		describe[CookieRequest](StateLogin, Clientbound, 0x05, "CookieRequest"),
		describe[LoginStart](StateLogin, Serverbound, 0x00, "LoginStart"),
		describe[EncryptionResponse](StateLogin, Serverbound, 0x01, "EncryptionResponse"),
		describe[LoginPluginResponse](StateLogin, Serverbound, 0x02, "LoginPluginResponse"),
		describe[LoginAcknowledged](StateLogin, Serverbound, 0x03, "LoginAcknowledged"),
		describe[CookieResponse](StateLogin, Serverbound, 0x04, "CookieResponse"),
	}
}

// ProtocolVersion is the protocol number the catalogue ids belong to.
const ProtocolVersion = 766
