package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cookieContext(reqCookie *http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if reqCookie != nil {
		c.Request.AddCookie(reqCookie)
	}
	return c, w
}

func responseCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	cookies := (&http.Response{Header: w.Header()}).Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestManager_SetSessionMaxAgeMatchesTTL(t *testing.T) {
	m := NewCookie("sid", "", false, 24*time.Hour)
	c, w := cookieContext(nil)

	m.SetSession(c, "tok")

	got := responseCookie(t, w)
	assert.Equal(t, "sid", got.Name)
	assert.Equal(t, "tok", got.Value)
	assert.Equal(t, 86400, got.MaxAge)
	assert.True(t, got.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, got.SameSite)
}

func TestManager_SessionAndClear(t *testing.T) {
	m := NewCookie("sid", "", true, time.Hour)

	c, _ := cookieContext(nil)
	assert.Empty(t, m.Session(c))

	c, w := cookieContext(&http.Cookie{Name: "sid", Value: "tok"})
	assert.Equal(t, "tok", m.Session(c))

	m.Clear(c)
	got := responseCookie(t, w)
	assert.Empty(t, got.Value)
	assert.Negative(t, got.MaxAge)
	assert.True(t, got.Secure)
}
