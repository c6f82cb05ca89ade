package config

import (
	"encoding/json"
	"fmt"

	"survey-engine/internal/models"
)

// Encoding modes for the bookmark URL.
const (
	EncodingVerbose = "verbose"
	EncodingCompact = "compact"
)

// Display modes for the question list.
const (
	DisplayTable   = "table"
	DisplayCards   = "cards"
	DisplayStepper = "stepper"
)

// compactMaxOptions is the largest option list the compact codec can
// represent (one decimal digit per question).
const compactMaxOptions = 10

// RawConfig mirrors the authored JSON. Ordered collections arrive as
// arrays of single-key objects; categories may also be a flat map from
// older questionnaires.
type RawConfig struct {
	Title            string               `json:"title"`
	Description      string               `json:"description"`
	Answers          []map[string]float64 `json:"answers"`
	Categories       json.RawMessage      `json:"categories"`
	Chart            *ChartConfig         `json:"chart"`
	Input            *InputConfig         `json:"input"`
	Persistence      *PersistenceConfig   `json:"persistence"`
	ResultTable      map[string]any       `json:"resulttable"`
	ResultTiles      map[string]any       `json:"resulttiles"`
	TrafficLights    *BucketConfig        `json:"trafficlights"`
	BookmarkEncoding string               `json:"bookmark_encoding"`
}

type ChartConfig struct {
	Type string `json:"type"`
}

type InputConfig struct {
	Size    int    `json:"size"`
	Element string `json:"element"`
	Display string `json:"display"`
}

type PersistenceConfig struct {
	Enabled      bool   `json:"enabled"`
	Type         string `json:"type"`
	Endpoint     string `json:"endpoint"`
	AskReloading bool   `json:"ask_reloading"`
	TimeoutMS    int    `json:"timeout_ms"`
	DebounceMS   int    `json:"debounce_ms"`
}

// BucketConfig carries either threshold cut points (red/orange or
// green/orange) or ordered range arrays with matching texts.
type BucketConfig struct {
	Red    *float64  `json:"red"`
	Orange *float64  `json:"orange"`
	Green  *float64  `json:"green"`
	Ranges []float64 `json:"ranges"`
	Texts  []string  `json:"texts"`
	Colors []string  `json:"colors"`
}

// Normalized is the shape every downstream component consumes. The answer
// slice order defines the option index space.
type Normalized struct {
	Title            string
	Description      string
	Answers          []models.AnswerOption
	Categories       map[string]string
	CategoryOrder    []string
	Chart            ChartConfig
	Input            InputConfig
	Persistence      PersistenceConfig
	ResultTable      map[string]any
	ResultTiles      map[string]any
	TrafficLights    *BucketConfig
	BookmarkEncoding string
}

// Parse decodes the authored JSON and normalizes it.
func Parse(data []byte) (*Normalized, []string) {
	var raw RawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, []string{fmt.Sprintf("config is not valid JSON: %v", err)}
	}
	return Normalize(&raw)
}

// Normalize converts a raw configuration into the normalized shape. It
// returns a list of human-readable problems instead of failing hard; the
// caller decides whether to abort or continue with defaults.
func Normalize(raw *RawConfig) (*Normalized, []string) {
	var problems []string

	cfg := &Normalized{
		Title:            raw.Title,
		Description:      raw.Description,
		Categories:       map[string]string{},
		ResultTable:      raw.ResultTable,
		ResultTiles:      raw.ResultTiles,
		TrafficLights:    raw.TrafficLights,
		BookmarkEncoding: raw.BookmarkEncoding,
	}
	if cfg.ResultTable == nil {
		cfg.ResultTable = map[string]any{}
	}
	if cfg.ResultTiles == nil {
		cfg.ResultTiles = map[string]any{}
	}

	if cfg.Title == "" {
		problems = append(problems, "config has no title")
	}

	// Answer options keep their authored order; the index is meaningful.
	for _, entry := range raw.Answers {
		for label, value := range entry {
			cfg.Answers = append(cfg.Answers, models.AnswerOption{Label: label, Value: value})
		}
	}
	if len(cfg.Answers) == 0 {
		problems = append(problems, "config defines no answer options")
	}

	keys, names, err := decodeCategories(raw.Categories)
	if err != nil {
		problems = append(problems, err.Error())
	}
	for i, key := range keys {
		cfg.Categories[key] = names[i]
	}
	cfg.CategoryOrder = keys
	if len(cfg.Categories) == 0 {
		problems = append(problems, "config defines no categories")
	}

	if raw.Chart != nil {
		cfg.Chart = *raw.Chart
	}
	switch cfg.Chart.Type {
	case "", "radar", "bar", "gauge":
	default:
		problems = append(problems, fmt.Sprintf("unknown chart type %q", cfg.Chart.Type))
	}

	if raw.Input != nil {
		cfg.Input = *raw.Input
	}
	if cfg.Input.Size == 0 {
		cfg.Input.Size = 5
	}
	if cfg.Input.Element == "" {
		cfg.Input.Element = "radiobox"
	}
	if cfg.Input.Display == "" {
		cfg.Input.Display = DisplayTable
	}
	switch cfg.Input.Element {
	case "radiobox", "button":
	default:
		problems = append(problems, fmt.Sprintf("unknown input element %q", cfg.Input.Element))
	}
	switch cfg.Input.Display {
	case DisplayTable, DisplayCards, DisplayStepper:
	default:
		problems = append(problems, fmt.Sprintf("unknown display mode %q", cfg.Input.Display))
	}

	if raw.Persistence != nil {
		cfg.Persistence = *raw.Persistence
	}
	if cfg.Persistence.Enabled {
		switch cfg.Persistence.Type {
		case "localstorage", "server", "hybrid":
		default:
			problems = append(problems, fmt.Sprintf("unknown persistence type %q", cfg.Persistence.Type))
		}
	}

	switch cfg.BookmarkEncoding {
	case "":
		cfg.BookmarkEncoding = EncodingVerbose
	case EncodingVerbose:
	case EncodingCompact:
		// One digit per question: more than ten options cannot be encoded.
		if len(cfg.Answers) > compactMaxOptions {
			problems = append(problems, fmt.Sprintf(
				"compact bookmark encoding supports at most %d answer options, config has %d",
				compactMaxOptions, len(cfg.Answers)))
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown bookmark encoding %q", cfg.BookmarkEncoding))
	}

	return cfg, problems
}

// decodeCategories accepts both the list-of-single-key-objects form and
// the legacy flat map form.
func decodeCategories(raw json.RawMessage) ([]string, []string, error) {
	if len(raw) == 0 {
		return nil, nil, nil
	}

	var list []map[string]string
	if err := json.Unmarshal(raw, &list); err == nil {
		var keys, names []string
		for _, entry := range list {
			for key, name := range entry {
				keys = append(keys, key)
				names = append(names, name)
			}
		}
		return keys, names, nil
	}

	var flat map[string]string
	if err := json.Unmarshal(raw, &flat); err == nil {
		var keys, names []string
		for key, name := range flat {
			keys = append(keys, key)
			names = append(names, name)
		}
		return keys, names, nil
	}

	return nil, nil, fmt.Errorf("categories must be a list of single-key objects or a flat map")
}
