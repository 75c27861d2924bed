package errors

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds how far a candidate may be from the input.
const maxSuggestDistance = 2

// Closest returns the candidate nearest to input by edit distance, ignoring
// case. ok is false when no candidate is within maxSuggestDistance.
func Closest(input string, candidates []string) (best string, ok bool) {
	bestDist := maxSuggestDistance + 1
	in := strings.ToLower(input)
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(in, strings.ToLower(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist <= maxSuggestDistance
}

// SuggestClosest sets a "Did you mean" suggestion when input is close to one
// of candidates.
func (e *Error) SuggestClosest(input string, candidates []string) *Error {
	if c, ok := Closest(input, candidates); ok {
		e.Suggestion = `Did you mean "` + c + `"?`
	}
	return e
}
