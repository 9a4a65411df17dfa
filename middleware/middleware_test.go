package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": c.GetString("requestID")})
	})
	r.GET("/", handlers...)
	return r
}

func TestRequireDisclaimer(t *testing.T) {
	r := newRouter(RequireDisclaimer())

	tests := []struct {
		name   string
		header string
		query  string
		code   int
	}{
		{"missing", "", "", http.StatusPreconditionRequired},
		{"declined", "false", "", http.StatusPreconditionRequired},
		{"garbage", "maybe", "", http.StatusPreconditionRequired},
		{"accepted header", "true", "", http.StatusOK},
		{"accepted query", "", "?disclaimer_accepted=1", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", "/"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set(DisclaimerHeader, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code)
			if tt.code != http.StatusOK {
				assert.Contains(t, w.Body.String(), "disclaimer")
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := newRouter(RequestID())

	req, _ := http.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req, _ = http.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Contains(t, w.Body.String(), "abc-123")
}
