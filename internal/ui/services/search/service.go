package search

import (
	"accessnav/internal/ui/logic"
	"accessnav/internal/ui/services/events"
)

// snapshot is the match state before a character was typed
type snapshot struct {
	matches []int
	current int
}

// Service is a type-ahead search over a list of labels.
// Every typed character narrows the match set; backspace restores the
// exact state that existed before that character was typed.
type Service struct {
	state   *State
	history []snapshot
	bus     events.EventBus

	labelsFn   func() []string // labels of the list being searched
	cursorFn   func() int      // current list index
	navigateFn func(int)       // moves the list to an index
}

// NewService creates a new search service
func NewService(bus events.EventBus) *Service {
	return &Service{
		state: &State{},
		bus:   events.OrNull(bus),
	}
}

// SetLabelsFunction sets the function returning the searchable labels
func (s *Service) SetLabelsFunction(fn func() []string) {
	s.labelsFn = fn
}

// SetCursorFunction sets the function returning the list's current index
func (s *Service) SetCursorFunction(fn func() int) {
	s.cursorFn = fn
}

// SetNavigateFunction sets the function to navigate to an index
func (s *Service) SetNavigateFunction(fn func(int)) {
	s.navigateFn = fn
}

// Memento is a copy of the whole search state, for rollback
type Memento struct {
	buffer  []rune
	matches []int
	current int
	history []snapshot
}

// Snapshot copies the buffer, matches and backspace history
func (s *Service) Snapshot() Memento {
	return Memento{
		buffer:  append([]rune(nil), s.state.Buffer...),
		matches: cloneInts(s.state.Matches),
		current: s.state.CurrentMatch,
		history: append([]snapshot(nil), s.history...),
	}
}

// Restore puts back a state taken by Snapshot without moving the list
func (s *Service) Restore(m Memento) {
	s.state.Buffer = append([]rune(nil), m.buffer...)
	s.state.Matches = cloneInts(m.matches)
	s.state.CurrentMatch = m.current
	s.history = append([]snapshot(nil), m.history...)
}

// OnChar appends c to the buffer and narrows the match set
func (s *Service) OnChar(c rune) Result {
	labels := s.labels()

	s.history = append(s.history, snapshot{
		matches: cloneInts(s.state.Matches),
		current: s.state.CurrentMatch,
	})

	wasActive := len(s.state.Buffer) > 0
	s.state.Buffer = append(s.state.Buffer, c)
	query := string(s.state.Buffer)

	if wasActive && s.state.Matches != nil {
		s.state.Matches = logic.NarrowMatches(labels, s.state.Matches, query)
	} else {
		s.state.Matches = logic.PrefixMatches(labels, query)
	}

	if len(s.state.Matches) == 0 {
		s.state.CurrentMatch = 0
		s.publishUpdated()
		return s.result(OutcomeNoMatch)
	}

	s.state.CurrentMatch = s.firstMatchFrom(s.cursor())
	s.navigateToCurrentMatch()
	s.publishUpdated()
	return s.result(OutcomeMatched)
}

// OnBackspace removes the last character. An emptied buffer ends the search.
func (s *Service) OnBackspace() Result {
	if len(s.state.Buffer) == 0 {
		return s.result(OutcomeInactive)
	}

	s.state.Buffer = s.state.Buffer[:len(s.state.Buffer)-1]
	if len(s.state.Buffer) == 0 {
		s.clearSearch()
		return s.result(OutcomeCleared)
	}

	if n := len(s.history); n > 0 {
		prev := s.history[n-1]
		s.history = s.history[:n-1]
		s.state.Matches = prev.matches
		s.state.CurrentMatch = prev.current
	} else {
		s.state.Matches = logic.PrefixMatches(s.labels(), string(s.state.Buffer))
		s.state.CurrentMatch = logic.Clamp(s.state.CurrentMatch, len(s.state.Matches))
	}
	if s.state.Matches == nil {
		s.state.Matches = []int{}
	}

	s.publishUpdated()
	if len(s.state.Matches) == 0 {
		return s.result(OutcomeNoMatch)
	}
	s.navigateToCurrentMatch()
	return s.result(OutcomeMatched)
}

// Clear ends the search
func (s *Service) Clear() {
	if s.state.Matches == nil && len(s.state.Buffer) == 0 {
		return
	}
	s.clearSearch()
}

// NextMatch moves to the next match, wrapping around
func (s *Service) NextMatch() Result {
	return s.step(logic.Next)
}

// PreviousMatch moves to the previous match, wrapping around
func (s *Service) PreviousMatch() Result {
	return s.step(logic.Previous)
}

// IsActive reports whether a search buffer is being typed
func (s *Service) IsActive() bool {
	return len(s.state.Buffer) > 0
}

// GetQuery returns the current search buffer
func (s *Service) GetQuery() string {
	return string(s.state.Buffer)
}

// GetMatches returns a copy of the current match set (nil when inactive)
func (s *Service) GetMatches() []int {
	return cloneInts(s.state.Matches)
}

// GetMatchCount returns the number of matches
func (s *Service) GetMatchCount() int {
	return len(s.state.Matches)
}

// GetCurrentMatch returns the pointer into the match set
func (s *Service) GetCurrentMatch() int {
	return s.state.CurrentMatch
}

// GetCurrentMatchIndex returns the item index of the current match
func (s *Service) GetCurrentMatchIndex() int {
	if len(s.state.Matches) == 0 {
		return -1
	}
	return s.state.Matches[s.state.CurrentMatch]
}

// IsMatch checks if an index is a search match
func (s *Service) IsMatch(index int) bool {
	for _, match := range s.state.Matches {
		if match == index {
			return true
		}
	}
	return false
}

// Internal methods
func (s *Service) step(move func(i, n int) int) Result {
	n := len(s.state.Matches)
	if n == 0 {
		if s.IsActive() {
			return s.result(OutcomeNoMatch)
		}
		return s.result(OutcomeInactive)
	}

	old := s.state.Matches[s.state.CurrentMatch]
	s.state.CurrentMatch = move(s.state.CurrentMatch, n)
	s.navigateToCurrentMatch()

	s.bus.Publish(SearchNavigatedEvent{
		OldIndex: old,
		NewIndex: s.state.Matches[s.state.CurrentMatch],
	})
	return s.result(OutcomeMatched)
}

// firstMatchFrom returns the pointer of the first match at or after index,
// wrapping to the first match
func (s *Service) firstMatchFrom(index int) int {
	for k, m := range s.state.Matches {
		if m >= index {
			return k
		}
	}
	return 0
}

func (s *Service) clearSearch() {
	s.state.Buffer = nil
	s.state.Matches = nil
	s.state.CurrentMatch = 0
	s.history = nil

	s.bus.Publish(SearchClearedEvent{})
}

func (s *Service) navigateToCurrentMatch() {
	if s.navigateFn == nil || len(s.state.Matches) == 0 {
		return
	}
	s.navigateFn(s.state.Matches[s.state.CurrentMatch])
}

func (s *Service) publishUpdated() {
	s.bus.Publish(SearchUpdatedEvent{
		Query:      string(s.state.Buffer),
		MatchCount: len(s.state.Matches),
		Index:      s.GetCurrentMatchIndex(),
	})
}

func (s *Service) result(outcome Outcome) Result {
	return Result{
		Outcome:    outcome,
		Query:      string(s.state.Buffer),
		Index:      s.GetCurrentMatchIndex(),
		MatchIndex: s.state.CurrentMatch,
		MatchCount: len(s.state.Matches),
	}
}

func (s *Service) labels() []string {
	if s.labelsFn == nil {
		return nil
	}
	return s.labelsFn()
}

func (s *Service) cursor() int {
	if s.cursorFn == nil {
		return 0
	}
	return s.cursorFn()
}

func cloneInts(in []int) []int {
	if in == nil {
		return nil
	}
	return append(make([]int, 0, len(in)), in...)
}
