package git

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// decodeText decodes repository bytes as UTF-8 with a Latin-1 fallback.
// Protheus sources in the wild are frequently CP1252/Latin-1 encoded.
func decodeText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}

	return string(decoded)
}
