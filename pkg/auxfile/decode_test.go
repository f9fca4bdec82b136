package auxfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		encoding string
		in       []byte
		want     string
	}{
		{name: "valid utf-8", encoding: "utf-8", in: []byte("Abbildung 3.2 – Übersicht"), want: "Abbildung 3.2 – Übersicht"},
		{name: "invalid byte replaced", encoding: "", in: []byte("a\xffb"), want: "a\uFFFDb"},
		{name: "latin1", encoding: "latin1", in: []byte("caf\xe9"), want: "café"},
		{name: "windows-1252 quotes", encoding: "windows-1252", in: []byte("\x93q\x94"), want: "\u201cq\u201d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := LookupEncoding(tt.encoding)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Decode(enc, tt.in))
		})
	}
}

func TestDecodeNilEncodingUsesUTF8(t *testing.T) {
	assert.Equal(t, "a\uFFFD", Decode(nil, []byte("a\xff")))
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "/doc/ch/a.aux", resolve("/doc", "ch/a.aux"))
	assert.Equal(t, "/shared/a.aux", resolve("/doc", "../shared/a.aux"))
	assert.Equal(t, "/abs/a.aux", resolve("/doc", "/abs/./a.aux"))
}
