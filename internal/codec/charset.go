package codec

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// lookupCharset returns the text encoding for a configured charset name.
// UTF-8 (or empty) returns nil: no transcoding.
func lookupCharset(name string) (encoding.Encoding, error) {
	switch name {
	case "", "utf-8", "utf8":
		return nil, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1, nil
	default:
		return nil, fmt.Errorf("unsupported charset %q", name)
	}
}

// toFile converts UTF-8 text to the file charset. Runes the charset cannot
// represent are replaced rather than failing the whole save.
func toFile(enc encoding.Encoding, b []byte) ([]byte, error) {
	if enc == nil {
		return b, nil
	}
	return encoding.ReplaceUnsupported(enc.NewEncoder()).Bytes(b)
}

// fromFile converts file bytes to UTF-8.
func fromFile(enc encoding.Encoding, b []byte) ([]byte, error) {
	if enc == nil {
		return b, nil
	}
	return enc.NewDecoder().Bytes(b)
}
