package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/videodash/dashboard"
	"github.com/lepinkainen/videodash/session"
)

const testToken = "secret-token"

// fakeServer is a minimal stand-in for the video service.
type fakeServer struct {
	mu       sync.Mutex
	videos   []dashboard.Video
	uploads  map[string][]byte
	requests []*http.Request

	uploadStatus int
	uploadBody   string
}

func newFakeServer(t *testing.T) (*fakeServer, *httptest.Server) {
	t.Helper()
	fs := &fakeServer{uploads: map[string][]byte{}}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in credentials
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Username != "alice" || in.Password != "wonderland" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"token": testToken})
	})
	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		var in credentials
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Username == "alice" {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "User already exists"})
			return
		}
		if in.FullName == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "full_name required"})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /video/list", fs.authorized(func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		defer fs.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"videos": fs.videos})
	}))
	mux.HandleFunc("POST /video/upload", fs.authorized(func(w http.ResponseWriter, r *http.Request) {
		if fs.uploadStatus != 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(fs.uploadStatus)
			_, _ = io.WriteString(w, fs.uploadBody)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No file part"})
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		fs.mu.Lock()
		fs.uploads[header.Filename] = data
		fs.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"message": "File uploaded"})
	}))
	mux.HandleFunc("POST /video/delete", fs.authorized(func(w http.ResponseWriter, r *http.Request) {
		var in deleteRequest
		_ = json.NewDecoder(r.Body).Decode(&in)
		fs.mu.Lock()
		defer fs.mu.Unlock()
		for i, v := range fs.videos {
			if v.Filename == in.Filename {
				fs.videos = append(fs.videos[:i], fs.videos[i+1:]...)
				writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "File not found"})
	}))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return fs, srv
}

func (fs *fakeServer) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		fs.requests = append(fs.requests, r.Clone(context.Background()))
		fs.mu.Unlock()
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Token is missing or invalid"})
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newTestClient(srv *httptest.Server, tokens session.Holder) *Client {
	return NewClient(Options{
		BaseURL:       srv.URL + "/",
		Timeout:       5 * time.Second,
		UploadTimeout: 5 * time.Second,
		UserAgent:     "videodash/test",
		Tokens:        tokens,
		Logger:        zerolog.Nop(),
	})
}

func TestLogin(t *testing.T) {
	_, srv := newFakeServer(t)
	client := newTestClient(srv, session.NewMemoryStore(""))

	token, err := client.Login(context.Background(), "alice", "wonderland")
	require.NoError(t, err)
	assert.Equal(t, testToken, token)

	_, err = client.Login(context.Background(), "alice", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid credentials", apiErr.ServerMessage())
	assert.True(t, apiErr.Unauthorized())
}

func TestRegister(t *testing.T) {
	_, srv := newFakeServer(t)
	client := newTestClient(srv, session.NewMemoryStore(""))

	err := client.Register(context.Background(), RegisterRequest{Username: "bob", Password: "pw", FullName: "Bob Builder"})
	require.NoError(t, err)

	err = client.Register(context.Background(), RegisterRequest{Username: "alice", Password: "pw", FullName: "Alice"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "User already exists", apiErr.Message)
}

func TestListVideosSendsCredentials(t *testing.T) {
	fs, srv := newFakeServer(t)
	fs.videos = []dashboard.Video{
		{Filename: "a.mp4", OriginalName: "A.mp4", Size: 1048576, URL: "http://cdn/a.mp4"},
		{Filename: "b.mp4", Size: 42},
	}
	client := newTestClient(srv, session.NewMemoryStore(testToken))

	videos, err := client.ListVideos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fs.videos, videos)

	require.Len(t, fs.requests, 1)
	req := fs.requests[0]
	assert.Equal(t, "videodash/test", req.Header.Get("User-Agent"))
	_, err = uuid.Parse(req.Header.Get("X-Request-ID"))
	assert.NoError(t, err, "X-Request-ID should be a uuid")
}

func TestListVideosWithoutToken(t *testing.T) {
	fs, srv := newFakeServer(t)
	client := newTestClient(srv, session.NewMemoryStore(""))

	_, err := client.ListVideos(context.Background())
	assert.ErrorIs(t, err, session.ErrNoToken)
	assert.Empty(t, fs.requests, "no request is sent without a token")
}

func TestListVideosRejectedToken(t *testing.T) {
	_, srv := newFakeServer(t)
	client := newTestClient(srv, session.NewMemoryStore("expired"))

	_, err := client.ListVideos(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.Unauthorized())
}

func TestUploadMultipart(t *testing.T) {
	fs, srv := newFakeServer(t)
	client := newTestClient(srv, session.NewMemoryStore(testToken))

	err := client.Upload(context.Background(), dashboard.UploadFile{
		Name:        "clip.mp4",
		ContentType: "video/mp4",
		Reader:      strings.NewReader("frames"),
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("frames"), fs.uploads["clip.mp4"])
}

func TestUploadErrorMessagePrecedence(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"Error field", http.StatusForbidden, `{"error": "Storage limit exceeded"}`, "Storage limit exceeded"},
		{"Message wins over error", http.StatusForbidden, `{"message": "Daily bandwidth exceeded", "error": "quota"}`, "Daily bandwidth exceeded"},
		{"No JSON body", http.StatusInternalServerError, `<html>oops</html>`, ""},
		{"Empty fields", http.StatusBadGateway, `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, srv := newFakeServer(t)
			fs.uploadStatus = tt.status
			fs.uploadBody = tt.body
			client := newTestClient(srv, session.NewMemoryStore(testToken))

			err := client.Upload(context.Background(), dashboard.UploadFile{
				Name:   "big.mp4",
				Reader: strings.NewReader("x"),
			})
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.ServerMessage())
			assert.Contains(t, apiErr.Error(), "api error")
		})
	}
}

func TestDelete(t *testing.T) {
	fs, srv := newFakeServer(t)
	fs.videos = []dashboard.Video{{Filename: "a.mp4"}, {Filename: "b.mp4"}}
	client := newTestClient(srv, session.NewMemoryStore(testToken))

	require.NoError(t, client.Delete(context.Background(), "a.mp4"))
	assert.Equal(t, []dashboard.Video{{Filename: "b.mp4"}}, fs.videos)

	err := client.Delete(context.Background(), "a.mp4")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestTransportErrorIsNotAPIError(t *testing.T) {
	_, srv := newFakeServer(t)
	client := newTestClient(srv, session.NewMemoryStore(testToken))
	srv.Close()

	_, err := client.ListVideos(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestStreamURL(t *testing.T) {
	client := NewClient(Options{
		BaseURL: "http://videos.example.com/api",
		Tokens:  session.NewMemoryStore("tok en"),
		Logger:  zerolog.Nop(),
	})

	got, err := client.StreamURL("my clip.mp4")
	require.NoError(t, err)
	assert.Equal(t, "http://videos.example.com/api/video/stream/my%20clip.mp4?token=tok+en", got)

	_, err = NewClient(Options{BaseURL: "http://x", Tokens: session.NewMemoryStore(""), Logger: zerolog.Nop()}).StreamURL("a.mp4")
	assert.ErrorIs(t, err, session.ErrNoToken)
}

func TestClientSatisfiesDashboardService(t *testing.T) {
	fs, srv := newFakeServer(t)
	fs.videos = []dashboard.Video{{Filename: "a.mp4", Size: 1}, {Filename: "b.mp4", Size: 2}}
	client := newTestClient(srv, session.NewMemoryStore(testToken))

	ctrl := dashboard.NewController(client, zerolog.Nop(), dashboard.Options{})
	require.NoError(t, ctrl.Refresh(context.Background()))
	ctrl.ToggleSelectAll()
	_, err := ctrl.RequestBulkDelete()
	require.NoError(t, err)

	report, err := ctrl.ConfirmPending(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.mp4", "b.mp4"}, report.Deleted)
	assert.Empty(t, ctrl.Snapshot().Videos)
}
