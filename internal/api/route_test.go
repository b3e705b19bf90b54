package api

import (
	"Pinwall/internal/api/handler"
	"Pinwall/internal/api/middleware"
	"Pinwall/internal/pkg/consts"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthenticator map[string]string

func (s stubAuthenticator) Authenticate(_ context.Context, sid string) (string, error) {
	if uid, ok := s[sid]; ok {
		return uid, nil
	}
	return "", errors.New("unknown session")
}

func newTestRouter(t *testing.T, uploadDir string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	group := &HandlersGroup{
		PostHandler:         handler.NewPostHandler(nil, 1024),
		PostActionHandler:   handler.NewPostActionHandler(nil),
		HashtagHandler:      handler.NewHashtagHandler(nil),
		AuthHandler:         handler.NewAuthHandler(nil, nil, handler.CookieConfig{SessionName: "sid", StateName: "state"}),
		NotificationHandler: handler.NewNotificationHandler(nil),
	}
	return SetupRouter(group, RouterOptions{
		Authenticator:   stubAuthenticator{},
		SessionCookie:   "sid",
		UploadDir:       uploadDir,
		UploadURLPrefix: "/uploads",
	})
}

func TestPing(t *testing.T) {
	r := newTestRouter(t, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set(middleware.TraceHeader, "trace-abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":200,"message":"pong","data":null}`, w.Body.String())
	assert.Equal(t, "trace-abc", w.Header().Get(middleware.TraceHeader))
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	r := newTestRouter(t, "")

	for _, rt := range []struct{ method, path string }{
		{http.MethodPost, "/api/posts"},
		{http.MethodDelete, "/api/posts/1"},
		{http.MethodPost, "/api/posts/1/like"},
		{http.MethodGet, "/api/auth/user"},
		{http.MethodGet, "/api/notifications"},
		{http.MethodPost, "/api/notifications/read_all"},
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(rt.method, rt.path, nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "stale"})
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, rt.path)
	}
}

func TestUploadsServedWithCacheControl(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), []byte("png"), 0o644))
	r := newTestRouter(t, dir)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/a.png", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png", w.Body.String())
	assert.Equal(t, consts.UploadCacheControl, w.Header().Get("Cache-Control"))
}

func TestUploadsNotMountedWithoutDir(t *testing.T) {
	r := newTestRouter(t, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/a.png", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
