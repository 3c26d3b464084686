package mockserver

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postUpload(t *testing.T, url, filename string) *http.Response {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, url, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestHealthEnvelope(t *testing.T) {
	srv := httptest.NewServer(New(Options{}, nil).SetupRouter())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var env struct {
		Success bool `json:"success"`
		Data    struct {
			Status     string `json:"status"`
			AIProvider string `json:"aiProvider"`
			Timestamp  string `json:"timestamp"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.True(t, env.Success)
	assert.Equal(t, "ok", env.Data.Status)
	assert.NotEmpty(t, env.Data.Timestamp)
}

func TestGenerateEnvelope(t *testing.T) {
	srv := httptest.NewServer(New(Options{Provider: "openai"}, nil).SetupRouter())
	defer srv.Close()

	resp := postUpload(t, srv.URL+"/api/curriculum/generate", "syllabus.pdf")
	defer resp.Body.Close()

	var env struct {
		Success bool `json:"success"`
		Data    struct {
			Curriculum struct {
				ID      string `json:"id"`
				Modules []struct {
					ID string `json:"id"`
				} `json:"modules"`
			} `json:"curriculum"`
			AIProvider string `json:"aiProvider"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.True(t, env.Success)
	assert.Equal(t, "openai", env.Data.AIProvider)
	require.Len(t, env.Data.Curriculum.Modules, 3)
	assert.NotEmpty(t, env.Data.Curriculum.ID)
	assert.NotEmpty(t, env.Data.Curriculum.Modules[0].ID)
}

func TestGenerateMissingFile(t *testing.T) {
	srv := httptest.NewServer(New(Options{}, nil).SetupRouter())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/curriculum/generate", "application/json", bytes.NewBufferString("{}"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStreamErrorPath(t *testing.T) {
	srv := httptest.NewServer(New(Options{}, nil).SetupRouter())
	defer srv.Close()

	resp := postUpload(t, srv.URL+"/api/curriculum/generate/stream", "fail-corrupt.pdf")
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "event: error")
	assert.Contains(t, string(body), "PDF_PARSE_ERROR")
	assert.NotContains(t, string(body), "event: complete")
}

func TestStreamHappyBody(t *testing.T) {
	srv := httptest.NewServer(New(Options{ChunkSize: 32}, nil).SetupRouter())
	defer srv.Close()

	resp := postUpload(t, srv.URL+"/api/curriculum/generate/stream", "syllabus.pdf")
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	s := string(body)
	assert.Contains(t, s, "event: progress")
	assert.Contains(t, s, "event: chunk")
	assert.Contains(t, s, ": keep-alive")
	assert.Contains(t, s, "event: complete")
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
}
