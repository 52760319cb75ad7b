package gareporter

import (
	"net/url"
	"strings"
)

const collectPath = "collect?"

// requestEncoder turns a ParameterSet into an absolute Measurement Protocol URL.
type requestEncoder struct {
	baseURI string
}

func (e requestEncoder) encode(params *ParameterSet) (*url.URL, error) {
	var b strings.Builder
	b.WriteString(collectPath)
	for i, k := range params.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escapeValue(k))
		b.WriteByte('=')
		b.WriteString(escapeValue(params.values[k]))
	}
	path := b.String()

	base, err := url.Parse(e.baseURI)
	if err != nil {
		return nil, &EncodingError{Kind: InvalidURL, Path: path, Base: e.baseURI, Err: err}
	}
	u, err := base.Parse(path)
	if err != nil {
		return nil, &EncodingError{Kind: InvalidURL, Path: path, Base: e.baseURI, Err: err}
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, &EncodingError{Kind: InvalidURL, Path: path, Base: e.baseURI}
	}
	return u, nil
}

const upperHex = "0123456789ABCDEF"

// escapeValue percent-encodes every UTF-8 byte of s except unreserved characters and the
// path characters !$'()*,:@/. Query delimiters, '+' and ';' are always escaped.
func escapeValue(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !isAllowedInValue(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, 0, len(s)+2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAllowedInValue(c) {
			buf = append(buf, c)
		} else {
			buf = append(buf, '%', upperHex[c>>4], upperHex[c&15])
		}
	}
	return string(buf)
}

func isAllowedInValue(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '.', '_', '~', '!', '$', '\'', '(', ')', '*', ',', ':', '@', '/':
		return true
	}
	return false
}
