package speech

import "accessnav/internal/domain"

// Utterance is one announcement as seen by the output device
type Utterance struct {
	Text     string
	Priority domain.Priority
}

// Queue models an output device's interrupt rules:
// Low waits behind the current utterance, Normal replaces the current
// utterance, High replaces it and flushes everything pending. A newer Low
// replaces a Low still waiting, so stale positions are never read out.
// It is not safe for concurrent use; the host feeds it from its update loop.
type Queue struct {
	current *Utterance
	pending []Utterance
	history []Utterance
	maxHist int
}

// NewQueue creates a queue keeping at most historySize transcript entries
func NewQueue(historySize int) *Queue {
	return &Queue{maxHist: historySize}
}

func (q *Queue) Speak(text string, priority domain.Priority) {
	if text == "" {
		return
	}
	u := Utterance{Text: text, Priority: priority}
	q.record(u)

	switch {
	case q.current == nil:
		q.current = &u
	case priority == domain.PriorityLow:
		if n := len(q.pending); n > 0 && q.pending[n-1].Priority == domain.PriorityLow {
			q.pending[n-1] = u
		} else {
			q.pending = append(q.pending, u)
		}
	case priority == domain.PriorityHigh:
		q.pending = q.pending[:0]
		q.current = &u
	default:
		q.current = &u
	}
}

// Finish marks the current utterance as done and starts the next pending one
func (q *Queue) Finish() {
	q.current = nil
	if len(q.pending) > 0 {
		next := q.pending[0]
		q.pending = q.pending[1:]
		q.current = &next
	}
}

// Current returns the utterance being spoken
func (q *Queue) Current() (Utterance, bool) {
	if q.current == nil {
		return Utterance{}, false
	}
	return *q.current, true
}

// Pending returns the number of queued utterances
func (q *Queue) Pending() int {
	return len(q.pending)
}

// Last returns the most recently received announcement
func (q *Queue) Last() (Utterance, bool) {
	if len(q.history) == 0 {
		return Utterance{}, false
	}
	return q.history[len(q.history)-1], true
}

// History returns the transcript, oldest first
func (q *Queue) History() []Utterance {
	return append([]Utterance(nil), q.history...)
}

func (q *Queue) record(u Utterance) {
	if q.maxHist == 0 {
		return
	}
	q.history = append(q.history, u)
	if len(q.history) > q.maxHist {
		q.history = q.history[len(q.history)-q.maxHist:]
	}
}
