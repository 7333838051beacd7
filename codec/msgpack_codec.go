package codec

import (
	"github.com/vmihailenco/msgpack/v5"
)

// MsgpackCodec is Tango's default wire format: arbitrary nested argument
// values, structurally round-tripped through a real MessagePack
// implementation rather than a hand-rolled outer frame.
type MsgpackCodec struct{}

func (c MsgpackCodec) Encode(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (c MsgpackCodec) Decode(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

func (c MsgpackCodec) Name() Name {
	return Msgpack
}

// Pack and Unpack are convenience wrappers used by call sites that always
// want MessagePack regardless of negotiated codec (the `args` query
// parameter and multipart `args` part are always MessagePack or JSON by
// MIME subtype, never content-negotiated).
func Pack(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func Unpack(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
