package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newIPTestContext(t *testing.T) (*gin.Context, *http.Request) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request = req
	return c, req
}

func TestGetClientIPPrefersForwardedFor(t *testing.T) {
	c, req := newIPTestContext(t)
	req.Header.Set("X-Forwarded-For", " 203.0.113.7 , 10.0.0.1")
	assert.Equal(t, "203.0.113.7", getClientIP(c))
}

func TestGetClientIPUsesRealIP(t *testing.T) {
	c, req := newIPTestContext(t)
	req.Header.Set("X-Real-IP", "198.51.100.9")
	assert.Equal(t, "198.51.100.9", getClientIP(c))
}

func TestGetClientIPFallsBackToRemoteAddr(t *testing.T) {
	c, req := newIPTestContext(t)
	req.RemoteAddr = "192.0.2.4:5123"
	assert.Equal(t, "192.0.2.4", getClientIP(c))
}
