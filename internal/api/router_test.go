package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siddarth709/Portfolio/internal/api/middleware"
	"github.com/siddarth709/Portfolio/internal/assets"
	"github.com/siddarth709/Portfolio/internal/auth"
	"github.com/siddarth709/Portfolio/internal/config"
	"github.com/siddarth709/Portfolio/internal/content"
	"github.com/siddarth709/Portfolio/internal/errcode"
	"github.com/siddarth709/Portfolio/internal/mirror"
)

const (
	adminPassword = "s3cret"
	validOTP      = "123456"
)

type fixedOTP struct{}

func (fixedOTP) Verify(code string) bool { return code == validOTP }

type fakePusher struct {
	err error
}

func (p *fakePusher) Push(context.Context, mirror.Change) mirror.Result {
	return mirror.Result{Backend: "fake", Err: p.err}
}

type testServer struct {
	router *gin.Engine
	layout *config.Layout
	pusher *fakePusher
	auth   *auth.AuthService
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	layout, err := config.NewLayout(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, layout.EnsureDirs())

	pusher := &fakePusher{}
	svc := content.NewService(layout, pusher, assets.NewManager(pusher, nil), nil)
	authService, err := auth.NewAuthService("test-key", adminPassword, fixedOTP{}, time.Hour)
	require.NoError(t, err)

	cfg := &config.Config{API: config.APIConfig{Mode: gin.TestMode}}
	router := NewRouter(cfg, nil)
	RegisterRoutes(router, Dependencies{
		Content:             svc,
		Auth:                authService,
		TestimonialPassword: "guest",
		ResearchPassword:    "reader",
	})
	return testServer{router: router, layout: layout, pusher: pusher, auth: authService}
}

func (s testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s testServer) token(t *testing.T) string {
	t.Helper()
	token, _, err := s.auth.IssueToken()
	require.NoError(t, err)
	return token
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, fileField, filename string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

type envelope struct {
	Code     int             `json:"code"`
	Data     json.RawMessage `json:"data"`
	Warnings []string        `json:"warnings"`
	Error    string          `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	w := s.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Correlation-ID"))

	w = s.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "portfolio_http_requests_total")
}

func TestPublicContentUsesHomeDefaults(t *testing.T) {
	s := newTestServer(t)
	w := s.do(httptest.NewRequest(http.MethodGet, "/api/content", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Home   content.Home    `json:"home"`
		Skills []content.Skill `json:"skills"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	assert.Equal(t, content.DefaultHome(), data.Home)
	assert.Empty(t, data.Skills)
}

func TestContact(t *testing.T) {
	s := newTestServer(t)

	w := s.do(formRequest(http.MethodPost, "/api/contact", url.Values{
		"name": {"Ann"}, "email": {"a@x.com"}, "message": {"Hi"},
	}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	env := decode(t, w)
	assert.Equal(t, errcode.OK, env.Code)
	assert.Empty(t, env.Warnings)

	var msg content.Message
	require.NoError(t, json.Unmarshal(env.Data, &msg))
	assert.Equal(t, content.Message{ID: "1", Name: "Ann", Email: "a@x.com", Message: "Hi", Date: "Now"}, msg)

	w = s.do(formRequest(http.MethodPost, "/api/contact", url.Values{"name": {"Ann"}}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errcode.InvalidInput, decode(t, w).Code)
}

func TestAdminRequiresSession(t *testing.T) {
	s := newTestServer(t)
	w := s.do(httptest.NewRequest(http.MethodGet, "/api/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/admin", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, s.do(req).Code)
}

func TestLoginFlow(t *testing.T) {
	s := newTestServer(t)

	w := s.do(formRequest(http.MethodPost, "/api/login", url.Values{"password": {"nope"}, "otp": {validOTP}}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid Password", decode(t, w).Error)

	w = s.do(formRequest(http.MethodPost, "/api/login", url.Values{"password": {adminPassword}, "otp": {"000000"}}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(formRequest(http.MethodPost, "/api/login", url.Values{"password": {adminPassword}}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(formRequest(http.MethodPost, "/api/login", url.Values{"password": {adminPassword}, "otp": {validOTP}}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := formRequest(http.MethodPost, "/api/admin/skills", url.Values{"category": {"Backend"}, "items": {"Go, SQL"}})
	req.AddCookie(cookies[0])
	w = s.do(req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(httptest.NewRequest(http.MethodPost, "/api/logout", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	require.Len(t, w.Result().Cookies(), 1)
	assert.Less(t, w.Result().Cookies()[0].MaxAge, 0)
}

func TestAdminUploadAndDelete(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t)

	req := multipartRequest(t, http.MethodPost, "/api/admin/projects", map[string]string{"title": "Site"}, "image", "shot.png", []byte("png"))
	req.Header.Set("Authorization", "Bearer "+token)
	w := s.do(req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var project content.Project
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &project))
	require.NotNil(t, project.Image)
	assert.Equal(t, "#", project.Link)
	assert.FileExists(t, s.layout.Projects.Path(*project.Image))

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/project/"+project.ID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = s.do(req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NoFileExists(t, s.layout.Projects.Path(*project.Image))

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/project/"+project.ID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = s.do(req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, errcode.ResourceMissing, decode(t, w).Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/widget/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusNotFound, s.do(req).Code)
}

func TestDeleteConflictKeepsRecord(t *testing.T) {
	s := newTestServer(t)
	body := `[{"id": 1, "title": "x", "image": "../../data/profile.json"}]`
	require.NoError(t, os.WriteFile(filepath.Join(s.layout.DataDir, "certificates.json"), []byte(body), 0o644))

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/certificate/1", nil)
	req.Header.Set("Authorization", "Bearer "+s.token(t))
	w := s.do(req)
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	assert.Equal(t, errcode.DataConflict, decode(t, w).Code)

	data, err := os.ReadFile(filepath.Join(s.layout.DataDir, "certificates.json"))
	require.NoError(t, err)
	assert.Equal(t, body, string(data))
}

func TestSyncFailureIsAWarning(t *testing.T) {
	s := newTestServer(t)
	s.pusher.err = errors.New("remote rejected push")

	req := formRequest(http.MethodPost, "/api/admin/education", url.Values{"school": {"MIT"}})
	req.Header.Set("Authorization", "Bearer "+s.token(t))
	w := s.do(req)
	require.Equal(t, http.StatusCreated, w.Code)

	env := decode(t, w)
	assert.Equal(t, errcode.SyncWarning, env.Code)
	require.Len(t, env.Warnings, 1)
	assert.Contains(t, env.Warnings[0], "Data saved locally")
}

func TestUpdateTestimonialRoute(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t)

	req := multipartRequest(t, http.MethodPost, "/api/admin/testimonials", map[string]string{"name": "Bo", "message": "Great"}, "image", "bo.jpg", []byte("x"))
	req.Header.Set("Authorization", "Bearer "+token)
	w := s.do(req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var orig content.Testimonial
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &orig))

	req = formRequest(http.MethodPut, "/api/admin/testimonials/"+orig.ID.String(), url.Values{"name": {"Bo"}, "message": {"Even better"}})
	req.Header.Set("Authorization", "Bearer "+token)
	w = s.do(req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated content.Testimonial
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &updated))
	assert.Equal(t, *orig.Image, *updated.Image)

	req = formRequest(http.MethodPut, "/api/admin/testimonials/99", url.Values{"name": {"Bo"}, "message": {"x"}})
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusNotFound, s.do(req).Code)
}

func TestProfileRolesRoutes(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t)

	req := formRequest(http.MethodPost, "/api/admin/profile/roles", url.Values{"prefix": {"I build"}, "core": {"APIs"}})
	req.Header.Set("Authorization", "Bearer "+token)
	require.Equal(t, http.StatusCreated, s.do(req).Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/profile/roles/3", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusNotFound, s.do(req).Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/profile/roles/abc", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, s.do(req).Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/profile/roles/0", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, s.do(req).Code)
}

func TestPublicTestimonialNeedsPassword(t *testing.T) {
	s := newTestServer(t)

	w := s.do(formRequest(http.MethodPost, "/api/testimonials", url.Values{"password": {"wrong"}, "name": {"a"}, "message": {"b"}}))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(formRequest(http.MethodPost, "/api/testimonials", url.Values{"password": {"guest"}, "name": {"a"}, "message": {"b"}}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/testimonials", nil))
	var items []content.Testimonial
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Now", items[0].Date)
}

func TestProtectedResearchDocument(t *testing.T) {
	s := newTestServer(t)
	req := multipartRequest(t, http.MethodPost, "/api/admin/research", map[string]string{"type": "published", "title": "Paper"}, "document", "paper.pdf", []byte("%PDF-1.7"))
	req.Header.Set("Authorization", "Bearer "+s.token(t))
	require.Equal(t, http.StatusCreated, s.do(req).Code)

	w := s.do(formRequest(http.MethodPost, "/api/research/1/document", url.Values{"password": {"nope"}}))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(formRequest(http.MethodPost, "/api/research/1/document", url.Values{"password": {"reader"}}))
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(body))

	w = s.do(formRequest(http.MethodPost, "/api/research/2/document", url.Values{"password": {"reader"}}))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminDownload(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, os.WriteFile(s.layout.Documents.Path("cv.pdf"), []byte("cv"), 0o644))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/download/cv.pdf", nil)
	req.Header.Set("Authorization", "Bearer "+s.token(t))
	w := s.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cv", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/admin/download/missing.pdf", nil)
	req.Header.Set("Authorization", "Bearer "+s.token(t))
	assert.Equal(t, http.StatusNotFound, s.do(req).Code)
}
