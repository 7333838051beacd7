// Package codec provides the wire serialization layer for Tango.
//
// It defines a pluggable Codec interface with two implementations:
//   - MsgpackCodec: the default wire format, compact and used for both
//     bodies and the base64url-encoded `args` query parameter.
//   - JSONCodec:    the fallback format, human-readable, selected by the
//     request's Content-Type / Accept headers.
//
// Content negotiation happens one layer up (in package server); this
// package just supplies the Strategy-pattern Codec the dispatcher picks
// between.
package codec

// Name identifies a wire serialization format by its MIME type.
type Name string

const (
	Msgpack Name = "application/msgpack"
	JSON    Name = "application/json"
)

// Codec is the interface for serialization/deserialization of RPC
// arguments and results. Implementing this interface allows adding new
// formats without changing any other layer — this is the Strategy Pattern.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
	Name() Name
}

// For returns the codec registered for name, defaulting to Msgpack when
// name is unrecognized — Msgpack is Tango's primary wire format.
func For(name Name) Codec {
	if name == JSON {
		return JSONCodec{}
	}
	return MsgpackCodec{}
}
