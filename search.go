package ikfast

import "math"

// searchState walks the discretized free-parameter offsets for a single search request.
// Offsets expand outward from zero as +1, -1, +2, -2, ... and continue one-sided once
// the opposite bound is exhausted. It knows nothing about deadlines; the engine owns
// termination on time.
type searchState struct {
	offset        int
	positiveBound int
	negativeBound int // always <= 0
}

// newSearchState computes the signed increment bounds around the seed's free-parameter
// value. A consistency window, when present, shrinks the searchable range to
// [max(min, guess-window), min(max, guess+window)] before discretization.
func newSearchState(guess float64, limit Limit, window float64, hasWindow bool, discretization float64) *searchState {
	lower, upper := limit.Min, limit.Max
	if hasWindow {
		lower = math.Max(lower, guess-window)
		upper = math.Min(upper, guess+window)
	}
	return &searchState{
		positiveBound: int((upper - guess) / discretization),
		negativeBound: -int((guess - lower) / discretization),
	}
}

// next advances to the following offset, returning false when both bounds are exhausted.
func (s *searchState) next() bool {
	if s.offset > 0 {
		switch {
		case -s.offset >= s.negativeBound:
			s.offset = -s.offset
		case s.offset+1 <= s.positiveBound:
			s.offset++
		default:
			return false
		}
		return true
	}
	switch {
	case 1-s.offset <= s.positiveBound:
		s.offset = 1 - s.offset
	case s.offset-1 >= s.negativeBound:
		s.offset--
	default:
		return false
	}
	return true
}
