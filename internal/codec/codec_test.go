package codec

import (
	"testing"

	"survey-engine/internal/config"
	"survey-engine/internal/models"
	"survey-engine/internal/session"
)

func testQuestions() []models.Question {
	return []models.Question{
		{ID: "A1", Text: "q1", Category: "A"},
		{ID: "A2", Text: "q2", Category: "A"},
		{ID: "B1", Text: "q3", Category: "B"},
	}
}

func testConfig(encoding string) *config.Normalized {
	return &config.Normalized{
		Answers: []models.AnswerOption{
			{Label: "never", Value: 0},
			{Label: "sometimes", Value: 2},
			{Label: "often", Value: 3},
			{Label: "usually", Value: 4},
			{Label: "always", Value: 5},
		},
		BookmarkEncoding: encoding,
	}
}

func TestVerboseRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		set  models.AnswerSet
	}{
		{"complete", models.AnswerSet{"A1": 2, "A2": 0, "B1": 4}},
		{"partial", models.AnswerSet{"A2": 1}},
		{"single zero", models.AnswerSet{"A1": 0}},
	}

	c := New(testQuestions(), testConfig(config.EncodingVerbose), nil)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			decoded, ok := c.Decode(c.Encode(tc.set))
			if !ok {
				t.Fatal("Decode rejected its own encoding")
			}
			if !decoded.Equal(tc.set) {
				t.Errorf("Round trip mismatch: encoded %v, decoded %v", tc.set, decoded)
			}
		})
	}
}

func TestCompactRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		set  models.AnswerSet
	}{
		{"complete", models.AnswerSet{"A1": 1, "A2": 0, "B1": 4}},
		{"partial with gap", models.AnswerSet{"A1": 3, "B1": 2}},
	}

	c := New(testQuestions(), testConfig(config.EncodingCompact), nil)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			decoded, ok := c.Decode(c.Encode(tc.set))
			if !ok {
				t.Fatal("Decode rejected its own encoding")
			}
			if !decoded.Equal(tc.set) {
				t.Errorf("Round trip mismatch: encoded %v, decoded %v", tc.set, decoded)
			}
		})
	}
}

func TestVerboseIsDefaultEncoding(t *testing.T) {
	c := New(testQuestions(), testConfig(""), nil)
	fragment := c.Encode(models.AnswerSet{"A1": 2})
	if fragment != "A1=2" {
		t.Errorf("Expected verbose fragment A1=2, got %q", fragment)
	}
}

func TestDecodeFailsClosed(t *testing.T) {
	c := New(testQuestions(), testConfig(config.EncodingVerbose), nil)

	testCases := []struct {
		name     string
		fragment string
	}{
		{"unparseable value", "A1=abc&A2=1"},
		{"negative index", "A1=-1&A2=1"},
		{"index out of range", "A1=9"},
		{"bad compact base64", "c=%%%not-base64"},
		{"compact with letters", "c=YWJj"}, // "abc"
		{"empty", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			set, ok := c.Decode(tc.fragment)
			if ok || set != nil {
				t.Errorf("Expected no data for %q, got %v", tc.fragment, set)
			}
		})
	}
}

func TestDecodeIgnoresLeadingHash(t *testing.T) {
	c := New(testQuestions(), testConfig(config.EncodingVerbose), nil)
	set, ok := c.Decode("#A1=2&B1=0")
	if !ok {
		t.Fatal("Expected decode to succeed")
	}
	want := models.AnswerSet{"A1": 2, "B1": 0}
	if !set.Equal(want) {
		t.Errorf("Expected %v, got %v", want, set)
	}
}

func TestEncodeLiveSuppression(t *testing.T) {
	sess := session.New("team-check")
	c := New(testQuestions(), testConfig(config.EncodingVerbose), sess)
	set := models.AnswerSet{"A1": 1}

	if _, ok := c.EncodeLive(set); !ok {
		t.Fatal("Expected live encoding to work before restore begins")
	}

	done := sess.BeginRestore()
	if fragment, ok := c.EncodeLive(set); ok {
		t.Errorf("Expected live encoding suppressed during restore, got %q", fragment)
	}
	done()

	if _, ok := c.EncodeLive(set); !ok {
		t.Error("Expected live encoding to resume after restore ends")
	}
}
