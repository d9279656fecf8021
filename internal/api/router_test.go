package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anirudh-kasthuri/MedAssist/internal/auth"
	"github.com/Anirudh-kasthuri/MedAssist/internal/database"
	"github.com/Anirudh-kasthuri/MedAssist/internal/inference"
	"github.com/Anirudh-kasthuri/MedAssist/internal/services"
	"github.com/Anirudh-kasthuri/MedAssist/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	store, err := storage.NewLocalProvider(t.TempDir())
	require.NoError(t, err)

	engine := inference.NewRuleEngine()
	users := services.NewUserService(db)

	router := NewRouter(Deps{
		Tokens:  auth.NewTokenService([]byte("test-secret"), time.Hour),
		Users:   users,
		Uploads: services.NewUploadService(db, store, engine),
		Reports: services.NewReportService(db, engine, false, ""),
		Audit:   services.NewAuditService(db),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, token string, body any) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func postMultipart(t *testing.T, url, token, filename, content string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
}

func TestEndToEndScenario(t *testing.T) {
	srv := newTestServer(t)

	// Register alice.
	resp := postJSON(t, srv.URL+"/auth/register", "", map[string]string{
		"username": "alice", "password": "pw123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var registered map[string]string
	decodeBody(t, resp, &registered)
	assert.Equal(t, "alice", registered["username"])
	assert.NotEmpty(t, registered["id"])

	// Wrong password is rejected.
	resp = postJSON(t, srv.URL+"/auth/login", "", map[string]string{
		"username": "alice", "password": "wrong",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Correct login yields a bearer token.
	resp = postJSON(t, srv.URL+"/auth/login", "", map[string]string{
		"username": "alice", "password": "pw123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login map[string]string
	decodeBody(t, resp, &login)
	token := login["access_token"]
	require.NotEmpty(t, token)
	assert.Equal(t, "bearer", login["token_type"])

	// Upload an X-ray image.
	resp = postMultipart(t, srv.URL+"/upload/image", token, "xray1.png", "fake-image")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var uploaded map[string]string
	decodeBody(t, resp, &uploaded)
	uploadID := uploaded["upload_id"]
	require.NotEmpty(t, uploadID)
	assert.Equal(t, "xray1.png", uploaded["filename"])
	assert.Contains(t, uploaded["analysis"], "X-ray")

	// Generate a report from the upload.
	resp = postJSON(t, srv.URL+"/reports/generate", token, map[string]string{
		"upload_id": uploadID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var generated map[string]string
	decodeBody(t, resp, &generated)
	assert.NotEmpty(t, generated["report_id"])
	assert.NotEmpty(t, generated["result"])

	// Unknown upload is a 404.
	resp = postJSON(t, srv.URL+"/reports/generate", token, map[string]string{
		"upload_id": "no-such-upload",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Reports list contains the one generated report.
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/reports", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	listResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var reports []map[string]any
	decodeBody(t, listResp, &reports)
	require.Len(t, reports, 1)
	assert.Equal(t, uploadID, reports[0]["uploadId"])
}

func TestTranscribeEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/auth/register", "", map[string]string{
		"username": "alice", "password": "pw123",
	})
	resp.Body.Close()
	resp = postJSON(t, srv.URL+"/auth/login", "", map[string]string{
		"username": "alice", "password": "pw123",
	})
	var login map[string]string
	decodeBody(t, resp, &login)

	resp = postMultipart(t, srv.URL+"/audio/transcribe", login["access_token"], "note.wav", "fake-audio")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var transcribed map[string]string
	decodeBody(t, resp, &transcribed)
	assert.Equal(t, "note.wav", transcribed["filename"])
	assert.NotEmpty(t, transcribed["transcript"])
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	srv := newTestServer(t)

	for _, route := range []string{"/upload/image", "/audio/transcribe", "/reports/generate"} {
		resp, err := http.Post(srv.URL+route, "application/json", strings.NewReader("{}"))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, route)
	}

	resp, err := http.Get(srv.URL + "/reports")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDuplicateRegistrationConflicts(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/auth/register", "", map[string]string{
		"username": "alice", "password": "pw123",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/auth/register", "", map[string]string{
		"username": "alice", "password": "other",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]any
	decodeBody(t, resp, &health)
	assert.Equal(t, "ok", health["status"])
}

func TestExpiredTokenRejected(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/auth/register", "", map[string]string{
		"username": "alice", "password": "pw123",
	})
	var registered map[string]string
	decodeBody(t, resp, &registered)

	expired := auth.NewTokenService([]byte("test-secret"), -time.Minute)
	tok, err := expired.Issue(registered["id"])
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/reports", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tok)
	listResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	listResp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, listResp.StatusCode)
}
