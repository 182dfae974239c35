package search

// State holds search state.
// Matches is nil while no search is active and empty (not nil) when the
// buffer matches nothing.
type State struct {
	Buffer       []rune
	Matches      []int // Indices of matching items, in list order
	CurrentMatch int   // Current match index in Matches slice
}

// Outcome classifies what a search operation did
type Outcome int

const (
	OutcomeInactive Outcome = iota // no search is active
	OutcomeMatched
	OutcomeNoMatch
	OutcomeCleared
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMatched:
		return "matched"
	case OutcomeNoMatch:
		return "no-match"
	case OutcomeCleared:
		return "cleared"
	default:
		return "inactive"
	}
}

// Result describes the state after an operation, for announcements
type Result struct {
	Outcome    Outcome
	Query      string
	Index      int // item index of the current match, -1 if none
	MatchIndex int // position of the current match within the match set
	MatchCount int
}

// Event types
type SearchUpdatedEvent struct {
	Query      string
	MatchCount int
	Index      int
}

type SearchClearedEvent struct{}

type SearchNavigatedEvent struct {
	OldIndex int
	NewIndex int
}
