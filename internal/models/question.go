package models

// Question is a single questionnaire item. Questions are immutable once
// loaded; the category key groups them for scoring.
type Question struct {
	ID       string `bson:"_id" json:"id"`
	Text     string `bson:"text" json:"text"`
	Category string `bson:"category" json:"category"`
}

// EnsureCategory derives the category from the first character of the id
// when no explicit category was assigned (e.g. "A1" belongs to "A").
func (q *Question) EnsureCategory() {
	if q.Category == "" && q.ID != "" {
		q.Category = string([]rune(q.ID)[0])
	}
}

// AnswerOption is one selectable option. Its position in the configured
// option list is the index used everywhere else, including the URL codecs.
type AnswerOption struct {
	Label string  `bson:"label" json:"label"`
	Value float64 `bson:"value" json:"value"`
	Color string  `bson:"color,omitempty" json:"color,omitempty"`
}

// MaxOptionValue returns the highest value among the given options.
func MaxOptionValue(options []AnswerOption) float64 {
	max := 0.0
	for i, opt := range options {
		if i == 0 || opt.Value > max {
			max = opt.Value
		}
	}
	return max
}
