package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"messenger/internal/middleware"
	"messenger/internal/service"
	"messenger/internal/service/mocks"
	"messenger/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServices struct {
	user     *mocks.MockUserService
	post     *mocks.MockPostService
	message  *mocks.MockMessageService
	reaction *mocks.MockReactionService
}

func newTestRouter(t *testing.T) (*gin.Engine, *testServices) {
	t.Helper()
	return buildTestRouter(t)
}

// newTestRouterAs authenticates every request as caller.
func newTestRouterAs(t *testing.T, caller int64) (*gin.Engine, *testServices) {
	t.Helper()
	return buildTestRouter(t, func(c *gin.Context) {
		c.Set(middleware.UserIDKey, caller)
		c.Next()
	})
}

func buildTestRouter(t *testing.T, auth ...gin.HandlerFunc) (*gin.Engine, *testServices) {
	t.Helper()
	ctrl := gomock.NewController(t)

	mocked := &testServices{
		user:     mocks.NewMockUserService(ctrl),
		post:     mocks.NewMockPostService(ctrl),
		message:  mocks.NewMockMessageService(ctrl),
		reaction: mocks.NewMockReactionService(ctrl),
	}
	services := &service.Services{
		User:     mocked.user,
		Post:     mocked.post,
		Message:  mocked.message,
		Reaction: mocked.reaction,
	}

	log := logger.NewNop()
	r := gin.New()
	r.Use(middleware.ErrorHandler(log))
	NewHandlers(services, nil, nil, log).RegisterRoutes(r.Group("/api/v1", auth...))
	return r, mocked
}

func doRequest(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
