package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
)

func okHandler(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	rec := httptest.NewRecorder()
	middleware.AuthMiddleware(http.HandlerFunc(okHandler)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsRefreshToken(t *testing.T) {
	refresh, err := auth.GenerateRefreshToken(7, "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	rec := httptest.NewRecorder()
	middleware.AuthMiddleware(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareStoresClaims(t *testing.T) {
	access, err := auth.GenerateToken(7, "seller")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()

	var gotID uint
	var gotRole string
	middleware.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = middleware.UserIDFromCtx(r)
		gotRole, _ = middleware.RoleFromCtx(r)
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(7), gotID)
	assert.Equal(t, "seller", gotRole)
}

func TestRecoveryReturns500(t *testing.T) {
	rec := httptest.NewRecorder()
	middleware.Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal Server Error")
}

func TestLimiterBlocksAfterMax(t *testing.T) {
	l := middleware.NewLimiter(2, time.Minute)
	h := l.Middleware(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "10.0.0.2:5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func limiterCodes(h http.Handler, remote string, forwarded ...string) []int {
	codes := make([]int, 0, len(forwarded))
	for _, fwd := range forwarded {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remote
		req.Header.Set("X-Forwarded-For", fwd)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	return codes
}

func TestLimiterIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	l := middleware.NewLimiter(1, time.Minute)
	h := l.Middleware(http.HandlerFunc(okHandler))

	codes := limiterCodes(h, "203.0.113.9:4000", "1.1.1.1", "2.2.2.2", "3.3.3.3")
	assert.Equal(t, []int{200, 429, 429}, codes, "rotating the header does not reset the budget")
}

func TestLimiterReadsForwardedForFromTrustedProxy(t *testing.T) {
	l := middleware.NewLimiter(1, time.Minute)
	require.NoError(t, l.TrustProxies("10.0.0.0/8", "192.168.1.1"))
	h := l.Middleware(http.HandlerFunc(okHandler))

	codes := limiterCodes(h, "10.1.2.3:4000", "198.51.100.1", "198.51.100.2", "198.51.100.1")
	assert.Equal(t, []int{200, 200, 429}, codes)

	codes = limiterCodes(h, "192.168.1.1:4000", "203.0.113.5, 10.9.9.9")
	assert.Equal(t, []int{200}, codes, "trusted hops on the right are skipped")
	codes = limiterCodes(h, "10.1.2.3:4000", "spoofed, 203.0.113.5")
	assert.Equal(t, []int{429}, codes, "the client is the nearest untrusted hop")
}

func TestTrustProxiesRejectsGarbage(t *testing.T) {
	assert.Error(t, middleware.NewLimiter(1, time.Minute).TrustProxies("not-an-ip"))
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()

	middleware.CORS(middleware.DefaultCORSOptions())(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}
