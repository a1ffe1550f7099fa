package game

import (
	"time"
	"unicode"
)

const (
	firstHintAfter  = 30 * time.Second
	secondHintAfter = 60 * time.Second
	minLenForSecond = 4
)

// MaskWord is the guesser-facing projection of the secret word at a given
// elapsed turn time. Non-alphanumeric runes are always shown. The first
// alphanumeric rune is revealed after 30s; the middle rune additionally
// after 60s on words of 4+ runes. Everything else renders as '_'. The
// stored word is never mutated.
func MaskWord(word string, elapsed time.Duration) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return ""
	}

	firstAlnum := -1
	for i, r := range runes {
		if isAlnum(r) {
			firstAlnum = i
			break
		}
	}
	middle := len(runes) / 2

	out := make([]rune, len(runes))
	for i, r := range runes {
		switch {
		case !isAlnum(r):
			out[i] = r
		case i == firstAlnum && elapsed >= firstHintAfter:
			out[i] = r
		case i == middle && len(runes) >= minLenForSecond && elapsed >= secondHintAfter:
			out[i] = r
		default:
			out[i] = '_'
		}
	}
	return string(out)
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
