package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/lessongest/internal/config"
	"github.com/dgallion1/lessongest/internal/outline"
	"github.com/dgallion1/lessongest/internal/pipeline"
	"github.com/dgallion1/lessongest/internal/render"
	"github.com/dgallion1/lessongest/internal/snapshot"
)

const (
	testAPIKey = "test-key"
	lessonText = "Plants\n\n1. Photosynthesis\nPlants make food from sunlight and water.\n\n- roots\n- leaves\n"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Config{
		APIKey:         testAPIKey,
		WorkerCount:    2,
		MaxQueueSize:   10,
		MaxUploadBytes: 1 << 20,
		JobTTL:         time.Hour,
	}
	store, err := snapshot.NewFileStore(t.TempDir())
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	orch := pipeline.NewOrchestrator(cfg, store, log)
	orch.Start(context.Background())
	t.Cleanup(orch.Stop)

	srv := httptest.NewServer(NewServer(orch, log, cfg))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url string, body io.Reader, contentType string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func multipartBody(t *testing.T, field string, files map[string]string, extra map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	for k, v := range extra {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func uploadLesson(t *testing.T, srv *httptest.Server, name, content string) (jobID, sessionID string) {
	t.Helper()
	body, ct := multipartBody(t, "file", map[string]string{name: content}, nil)
	resp := do(t, http.MethodPost, srv.URL+"/api/lessons", body, ct)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var accepted struct {
		JobID     string `json:"job_id"`
		SessionID string `json:"session_id"`
		PollURL   string `json:"poll_url"`
	}
	decode(t, resp, &accepted)
	require.NotEmpty(t, accepted.JobID)
	assert.Equal(t, "/api/lessons/jobs/"+accepted.JobID, accepted.PollURL)
	return accepted.JobID, accepted.SessionID
}

func waitForStatus(t *testing.T, srv *httptest.Server, jobID string) pipeline.JobSnapshot {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		var snap pipeline.JobSnapshot
		resp := do(t, http.MethodGet, srv.URL+"/api/lessons/jobs/"+jobID, nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decode(t, resp, &snap)
		switch snap.Status {
		case pipeline.StatusCompleted, pipeline.StatusFailed, pipeline.StatusDupSkipped:
			return snap
		}
		if time.Now().After(deadline) {
			t.Fatalf("job %s still %s", jobID, snap.Status)
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestHealthIsPublic(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/stats/build")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/stats/build", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLessonLifecycle(t *testing.T) {
	srv := newTestServer(t)
	jobID, sessionID := uploadLesson(t, srv, "plants.txt", lessonText)

	job := waitForStatus(t, srv, jobID)
	require.Equal(t, pipeline.StatusCompleted, job.Status, "errors: %v", job.Progress.Errors)
	assert.Equal(t, sessionID, job.SessionID)
	assert.Equal(t, 1, job.Progress.Headings)

	// Outline
	resp := do(t, http.MethodGet, srv.URL+"/api/lessons/"+sessionID+"/outline", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var snap snapshot.Snapshot
	decode(t, resp, &snap)
	assert.Equal(t, "Plants", snap.Outline.Title)
	assert.Equal(t, []outline.Heading{{Text: "1. Photosynthesis", Level: 2}}, snap.Outline.Headings)
	assert.Equal(t, []outline.BulletGroup{{"- roots", "- leaves"}}, snap.Outline.BulletGroups)

	// Quiz
	resp = do(t, http.MethodGet, srv.URL+"/api/lessons/"+sessionID+"/quiz?lang=en", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var quiz render.Quiz
	decode(t, resp, &quiz)
	require.Len(t, quiz.Questions, 3)
	assert.Equal(t, "quiz", quiz.Questions[0].Type)

	// Activities
	resp = do(t, http.MethodGet, srv.URL+"/api/lessons/"+sessionID+"/activities", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var acts render.ActivitySet
	decode(t, resp, &acts)
	assert.Len(t, acts.Activities, 5)

	// Deck
	resp = do(t, http.MethodGet, srv.URL+"/api/lessons/"+sessionID+"/deck?lang=en", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var deck render.Deck
	decode(t, resp, &deck)
	assert.Equal(t, "Plants", deck.Title)

	resp = do(t, http.MethodGet, srv.URL+"/api/lessons/"+sessionID+"/deck.pdf?lang=en&scheme=minimal", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	pdf, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	// Delete
	resp = do(t, http.MethodDelete, srv.URL+"/api/lessons/"+sessionID, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = do(t, http.MethodGet, srv.URL+"/api/lessons/"+sessionID+"/outline", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDuplicateUpload(t *testing.T) {
	srv := newTestServer(t)

	firstJob, firstSession := uploadLesson(t, srv, "a.txt", lessonText)
	require.Equal(t, pipeline.StatusCompleted, waitForStatus(t, srv, firstJob).Status)

	secondJob, _ := uploadLesson(t, srv, "b.txt", lessonText)
	second := waitForStatus(t, srv, secondJob)
	assert.Equal(t, pipeline.StatusDupSkipped, second.Status)
	assert.Equal(t, firstSession, second.DuplicateOf)
}

func TestUploadValidation(t *testing.T) {
	srv := newTestServer(t)

	body, ct := multipartBody(t, "file", map[string]string{"deck.pptx": "x"}, nil)
	resp := do(t, http.MethodPost, srv.URL+"/api/lessons", body, ct)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, ct = multipartBody(t, "other", map[string]string{"a.txt": "x"}, nil)
	resp = do(t, http.MethodPost, srv.URL+"/api/lessons", body, ct)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	big := strings.Repeat("x", 1<<20+10)
	body, ct = multipartBody(t, "file", map[string]string{"big.txt": big}, nil)
	resp = do(t, http.MethodPost, srv.URL+"/api/lessons", body, ct)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestBatchUpload(t *testing.T) {
	srv := newTestServer(t)

	body, ct := multipartBody(t, "files", map[string]string{
		"one.txt":   "One\n\nfirst lesson body",
		"two.md":    "# Two\n\nsecond lesson body\n",
		"three.exe": "nope",
	}, nil)
	resp := do(t, http.MethodPost, srv.URL+"/api/lessons/batch", body, ct)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var out struct {
		Jobs []map[string]any `json:"jobs"`
	}
	decode(t, resp, &out)
	require.Len(t, out.Jobs, 3)

	accepted, rejected := 0, 0
	for _, j := range out.Jobs {
		if _, ok := j["error"]; ok {
			rejected++
			assert.Equal(t, "three.exe", j["filename"])
			continue
		}
		accepted++
		snap := waitForStatus(t, srv, j["job_id"].(string))
		assert.Equal(t, pipeline.StatusCompleted, snap.Status)
	}
	assert.Equal(t, 2, accepted)
	assert.Equal(t, 1, rejected)
}

func TestLessonNotFoundAndInvalidID(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/api/lessons/0b7f9a52-5f0e-4f7c-9d1e-8c2f0f3b6a11/quiz", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/lessons/not-a-uuid/outline", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/lessons/jobs/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBuildOutlineDirect(t *testing.T) {
	srv := newTestServer(t)

	reqBody := `{"pages":[
		{"page_number":1,"lines":["Title Line","","1. First Heading","Some body text here.","","- item one","- item two","","Another body paragraph."]}
	]}`
	resp := do(t, http.MethodPost, srv.URL+"/api/outline", strings.NewReader(reqBody), "application/json")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var o outline.Outline
	decode(t, resp, &o)
	assert.Equal(t, "Title Line", o.Title)
	assert.Equal(t, []outline.Heading{{Text: "1. First Heading", Level: 2}}, o.Headings)
	assert.Equal(t, []string{"Some body text here.", "Another body paragraph."}, o.Paragraphs)
	assert.Equal(t, []outline.BulletGroup{{"- item one", "- item two"}}, o.BulletGroups)
}

func TestBuildOutlineEmptyAndInvalid(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/outline", strings.NewReader(`{"pages":[]}`), "application/json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"","headings":[],"paragraphs":[],"bullet_groups":[]}`, string(raw))

	resp = do(t, http.MethodPost, srv.URL+"/api/outline", strings.NewReader(`{"pages":`), "application/json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/api/outline", strings.NewReader(`{"lines":[]}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBuildStatsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	jobID, _ := uploadLesson(t, srv, "plants.txt", lessonText)
	waitForStatus(t, srv, jobID)

	resp := do(t, http.MethodGet, srv.URL+"/api/stats/build", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Stats pipeline.StatsSnapshot `json:"stats"`
	}
	decode(t, resp, &out)
	assert.Equal(t, 1, out.Stats.Count)
	assert.Equal(t, 1, out.Stats.Pages)
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"lesson.pdf":         "lesson.pdf",
		"../../etc/passwd":   "passwd",
		"dir/sub/notes.txt":  "notes.txt",
		"":                   "unnamed",
		"a..b.txt":           "a_b.txt",
		`C:\docs\lesson.txt`: `C:_docs_lesson.txt`,
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizeFilename(in), "input %q", in)
	}
}
