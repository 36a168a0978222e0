package chunk

// Window is a half-open token range [StartToken, EndToken).
type Window struct {
	Index      int
	StartToken int
	EndToken   int
	Tokens     []string
}

// SlidingWindow returns every full window of size tokens, advancing by step.
// When the sequence is shorter than size a single window covers all of it.
func SlidingWindow(tokens []string, size, step int) []Window {
	if size <= 0 || len(tokens) == 0 {
		return nil
	}
	if step <= 0 {
		step = 1
	}
	if size > len(tokens) {
		size = len(tokens)
	}

	windows := make([]Window, 0, (len(tokens)-size)/step+1)
	for start := 0; start+size <= len(tokens); start += step {
		end := start + size
		windows = append(windows, Window{
			Index:      len(windows),
			StartToken: start,
			EndToken:   end,
			Tokens:     tokens[start:end],
		})
	}
	return windows
}

// TypeTokenRatio returns unique/total for the window's tokens.
func (w Window) TypeTokenRatio() float64 {
	if len(w.Tokens) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(w.Tokens))
	for _, t := range w.Tokens {
		seen[t] = struct{}{}
	}
	return float64(len(seen)) / float64(len(w.Tokens))
}
