package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"survey-engine/internal/config"
	"survey-engine/internal/models"
)

// Questionnaire is a loaded definition: normalized config plus the ordered
// question list.
type Questionnaire struct {
	Config    *config.Normalized
	Questions []models.Question
}

type questionnaireFile struct {
	Config    json.RawMessage   `json:"config"`
	Questions []models.Question `json:"questions"`
}

// QuestionnaireService loads questionnaire definitions from a directory,
// one <folder>.json per questionnaire, and caches them.
type QuestionnaireService struct {
	dir string

	mu    sync.RWMutex
	cache map[string]*Questionnaire
}

func NewQuestionnaireService(dir string) *QuestionnaireService {
	return &QuestionnaireService{dir: dir, cache: map[string]*Questionnaire{}}
}

func (s *QuestionnaireService) Get(folder string) (*Questionnaire, error) {
	s.mu.RLock()
	q, ok := s.cache[folder]
	s.mu.RUnlock()
	if ok {
		return q, nil
	}

	q, err := s.load(folder)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[folder] = q
	s.mu.Unlock()
	return q, nil
}

func (s *QuestionnaireService) load(folder string) (*Questionnaire, error) {
	// Folder names come from the URL; keep them inside the directory.
	if folder == "" || folder != filepath.Base(folder) {
		return nil, fmt.Errorf("invalid questionnaire folder %q", folder)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, folder+".json"))
	if err != nil {
		return nil, fmt.Errorf("questionnaire %q: %w", folder, err)
	}

	var file questionnaireFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("questionnaire %q: %w", folder, err)
	}

	cfg, problems := config.Parse(file.Config)
	if len(problems) > 0 {
		return nil, fmt.Errorf("questionnaire %q config invalid: %v", folder, problems)
	}

	questions := make([]models.Question, len(file.Questions))
	for i, q := range file.Questions {
		q.EnsureCategory()
		questions[i] = q
	}

	return &Questionnaire{Config: cfg, Questions: questions}, nil
}
