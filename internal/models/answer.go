package models

// AnswerSet maps a question id to the selected option index. It is the
// single canonical shape passed between all components; every key must be
// an existing question id and every value a valid option index.
type AnswerSet map[string]int

// Clone returns an independent copy of the set.
func (a AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(a))
	for id, idx := range a {
		out[id] = idx
	}
	return out
}

// Equal reports whether two sets contain exactly the same entries.
func (a AnswerSet) Equal(b AnswerSet) bool {
	if len(a) != len(b) {
		return false
	}
	for id, idx := range a {
		other, ok := b[id]
		if !ok || other != idx {
			return false
		}
	}
	return true
}
