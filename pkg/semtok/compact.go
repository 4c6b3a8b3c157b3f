package semtok

// Compact merges runs of adjacent tokens with the same class into single
// tokens. tokens must be sorted and non-overlapping; the result is too.
// Compact is idempotent and returns an empty slice for empty input.
func Compact(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if n := len(out); n > 0 && out[n-1].Adjoins(tok) {
			out[n-1] = out[n-1].WithEnd(tok.End())
			continue
		}
		out = append(out, tok)
	}
	return out
}
