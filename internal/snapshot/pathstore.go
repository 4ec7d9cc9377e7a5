package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PathstoreStore keeps snapshots in a pathstore KV server under
// lessongest/snapshots/<id>.
type PathstoreStore struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

const pathstorePrefix = "lessongest/snapshots/"

func NewPathstoreStore(baseURL, apiKey string) *PathstoreStore {
	return &PathstoreStore{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// nodeRequest is the body for PUT /kv/{key}.
type nodeRequest struct {
	Value      *Snapshot `json:"value"`
	MemoryType string    `json:"memory_type,omitempty"`
	Source     string    `json:"source,omitempty"`
}

// nodeResponse is the response from GET /kv/{key}.
type nodeResponse struct {
	Key   string          `json:"key_path"`
	Value json.RawMessage `json:"value"`
}

func (s *PathstoreStore) key(id string) string {
	return s.baseURL + "/kv/" + pathstorePrefix + id
}

func (s *PathstoreStore) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	return req, nil
}

func (s *PathstoreStore) Put(ctx context.Context, id string, snap *Snapshot) error {
	if err := checkID(id); err != nil {
		return err
	}
	body, err := json.Marshal(nodeRequest{Value: snap, MemoryType: "outline", Source: snap.Filename})
	if err != nil {
		return fmt.Errorf("marshal node: %w", err)
	}
	req, err := s.newRequest(ctx, http.MethodPut, s.key(id), bytes.NewReader(body))
	if err != nil {
		return err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("put snapshot: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("put snapshot %s: status %d: %s", id, resp.StatusCode, string(respBody))
	}
	return nil
}

func (s *PathstoreStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	req, err := s.newRequest(ctx, http.MethodGet, s.key(id), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("get snapshot %s: status %d: %s", id, resp.StatusCode, string(respBody))
	}

	var node nodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&node); err != nil {
		return nil, fmt.Errorf("decode node: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(node.Value, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", id, err)
	}
	return &snap, nil
}

func (s *PathstoreStore) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	req, err := s.newRequest(ctx, http.MethodDelete, s.key(id), nil)
	if err != nil {
		return err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusNotFound:
		return nil
	}
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return fmt.Errorf("delete snapshot %s: status %d: %s", id, resp.StatusCode, string(respBody))
}

// Close releases idle connections.
func (s *PathstoreStore) Close() {
	s.httpClient.CloseIdleConnections()
}
