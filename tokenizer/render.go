package tokenizer

import "strings"

// FormatMeCab renders tokens in the MeCab-compatible per-line shape:
// "surface\tfeature,tuple,comma,joined" per line, terminated by a lone
// "EOS" line.
func FormatMeCab(tokens []*Token) string {
	var b strings.Builder
	for _, t := range tokens {
		feats, err := t.Features()
		b.WriteString(t.Surface)
		b.WriteByte('\t')
		if err == nil {
			b.WriteString(strings.Join(feats, ","))
		}
		b.WriteByte('\n')
	}
	b.WriteString("EOS\n")
	return b.String()
}

// FormatPlain renders tokens as whitespace-separated surface strings.
func FormatPlain(tokens []*Token) string {
	surfaces := make([]string, len(tokens))
	for i, t := range tokens {
		surfaces[i] = t.Surface
	}
	return strings.Join(surfaces, " ")
}
