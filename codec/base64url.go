package codec

import "encoding/base64"

// Base64URL and UnBase64URL implement the query-string encoding used for
// `query`-type calls: URL-safe alphabet, no padding.
func Base64URL(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func UnBase64URL(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}
