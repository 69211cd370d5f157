package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/stwalsh4118/vanprop/internal/logger"
	"github.com/stwalsh4118/vanprop/internal/middleware"
)

const testPrefix = "/api"

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter builds a router with the production middleware chain minus
// CORS, debug error echoing enabled.
func newTestRouter(h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger.New("test")))
	router.Use(middleware.DebugErrors(true))
	router.Use(middleware.Recovery(logger.New("test")))

	RegisterRoutes(router, testPrefix, h)
	router.NoRoute(middleware.NotFound())
	return router
}

func perform(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}
