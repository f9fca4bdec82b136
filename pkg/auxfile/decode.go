package auxfile

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/agentstation/floataudit/pkg/constants"
	"github.com/agentstation/floataudit/pkg/errors"
)

// LookupEncoding resolves a WHATWG encoding label. An empty name selects UTF-8.
func LookupEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = constants.DefaultEncoding
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, errors.NewConfigError("encoding", "unsupported encoding "+`"`+name+`"`, err)
	}
	return enc, nil
}

// Decode converts raw bytes to text. Invalid sequences become U+FFFD; it never fails.
func Decode(enc encoding.Encoding, b []byte) string {
	if enc == nil {
		enc = defaultEncoding()
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(out)
}

func defaultEncoding() encoding.Encoding {
	return unicode.UTF8
}
