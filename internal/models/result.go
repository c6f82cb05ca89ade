package models

// Bucket is a traffic-light style classification of a percentage.
type Bucket struct {
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

// CategoryScore is derived from an answer set on every scoring request,
// never stored.
type CategoryScore struct {
	CategoryKey  string  `json:"category_key"`
	CategoryName string  `json:"category_name"`
	Score        float64 `json:"score"`
	MaxScore     float64 `json:"max_score"`
	Percentage   float64 `json:"percentage"`
	Bucket       Bucket  `json:"bucket"`
}
