package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"survey-engine/internal/models"
)

// RemoteStore talks to the snapshot storage endpoint. Requests are keyed
// by (session token, questionnaire folder) and bounded by the configured
// timeout; a 404 means "no data", never an error.
type RemoteStore struct {
	endpoint string
	token    string
	timeout  time.Duration
	client   *http.Client
}

type saveRequest struct {
	SessionToken  string           `json:"session_token"`
	Questionnaire string           `json:"questionnaire"`
	Answers       models.AnswerSet `json:"answers"`
	Timestamp     time.Time        `json:"timestamp"`
}

type loadResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Answers   models.AnswerSet `json:"answers"`
		Timestamp time.Time        `json:"timestamp"`
	} `json:"data"`
}

func NewRemoteStore(endpoint, token string, timeout time.Duration) *RemoteStore {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RemoteStore{
		endpoint: endpoint,
		token:    token,
		timeout:  timeout,
		client:   &http.Client{},
	}
}

func (r *RemoteStore) Save(ctx context.Context, folder string, answers models.AnswerSet) error {
	body, err := json.Marshal(saveRequest{
		SessionToken:  r.token,
		Questionnaire: folder,
		Answers:       answers,
		Timestamp:     time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal save request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("save answers: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("save answers: server returned %d", resp.StatusCode)
	}
	return nil
}

func (r *RemoteStore) Load(ctx context.Context, folder string) (*models.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url(folder), nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("load answers: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("load answers: server returned %d", resp.StatusCode)
	}

	var parsed loadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("load answers: %w", err)
	}
	return &models.Snapshot{Answers: parsed.Data.Answers, Timestamp: parsed.Data.Timestamp}, nil
}

// Clear deletes the remote snapshot. A 404 counts as already cleared.
func (r *RemoteStore) Clear(ctx context.Context, folder string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, r.url(folder), nil)
	if err != nil {
		return err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("clear answers: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("clear answers: server returned %d", resp.StatusCode)
	}
	return nil
}

func (r *RemoteStore) url(folder string) string {
	q := url.Values{}
	q.Set("session_token", r.token)
	q.Set("questionnaire", folder)
	return r.endpoint + "?" + q.Encode()
}
