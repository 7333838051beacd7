package codec

import (
	"encoding/json"
)

// JSONCodec uses Go's standard library encoding/json for serialization.
// It is the fallback format for Accept/Content-Type negotiation:
// human-readable, cross-language, easy to debug.
type JSONCodec struct{}

func (c JSONCodec) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (c JSONCodec) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (c JSONCodec) Name() Name {
	return JSON
}

// JSONEncode and JSONParse are bare json helpers for call sites that
// already know the format (no codec lookup needed); the server's JSON and
// multipart arg parsing uses JSONParse.
func JSONEncode(v any) (string, error) {
	b, err := json.Marshal(v)
	return string(b), err
}

func JSONParse(s string, v any) error {
	return json.Unmarshal([]byte(s), v)
}
