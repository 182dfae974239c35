package speech

import "accessnav/internal/domain"

// Recorder keeps every announcement; tests use it to observe output
type Recorder struct {
	Utterances []Utterance
}

func (r *Recorder) Speak(text string, priority domain.Priority) {
	r.Utterances = append(r.Utterances, Utterance{Text: text, Priority: priority})
}

// Texts returns the recorded text in order
func (r *Recorder) Texts() []string {
	texts := make([]string, len(r.Utterances))
	for i, u := range r.Utterances {
		texts[i] = u.Text
	}
	return texts
}

// Last returns the most recent text, or "" if nothing was spoken
func (r *Recorder) Last() string {
	if len(r.Utterances) == 0 {
		return ""
	}
	return r.Utterances[len(r.Utterances)-1].Text
}

// Reset forgets everything recorded so far
func (r *Recorder) Reset() {
	r.Utterances = nil
}
