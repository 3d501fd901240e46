package value

import "encoding/hex"
import "encoding/base64"

// Decode returns the binary payload for hex- and base64-encoded XStr
// values. For any other Type, Decode returns the encoded text verbatim
// as bytes: the original implementation treats unrecognized XStr type
// names as opaque payloads rather than an error.
func (x XStr) Decode() ([]byte, error) {
	switch x.Type {
	case "hex":
		return hex.DecodeString(x.Encoded)
	case "b64":
		return base64.StdEncoding.DecodeString(x.Encoded)
	default:
		return []byte(x.Encoded), nil
	}
}
