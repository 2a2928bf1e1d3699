// README: Tests for Firebase auth middleware.
package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"journeo/internal/http/middleware"
	"journeo/internal/infra"
)

// stubVerifier is a test double for infra.TokenVerifier.
type stubVerifier struct {
	token *infra.CallerToken
	err   error
	got   string
}

func (s *stubVerifier) VerifyIDToken(_ context.Context, idToken string) (*infra.CallerToken, error) {
	s.got = idToken
	return s.token, s.err
}

func newAuthRouter(verifier infra.TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Auth(verifier))
	r.GET("/api/trips/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": middleware.CallerUID(c), "role": middleware.CallerRole(c)})
	})
	return r
}

func TestAuth_MissingHeader(t *testing.T) {
	r := newAuthRouter(&stubVerifier{token: &infra.CallerToken{UID: "traveller1"}})
	req := httptest.NewRequest(http.MethodGet, "/api/trips/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_InvalidBearerPrefix(t *testing.T) {
	r := newAuthRouter(&stubVerifier{token: &infra.CallerToken{UID: "traveller1"}})
	req := httptest.NewRequest(http.MethodGet, "/api/trips/", nil)
	req.Header.Set("Authorization", "Token sometoken")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_EmptyBearer(t *testing.T) {
	v := &stubVerifier{token: &infra.CallerToken{UID: "traveller1"}}
	r := newAuthRouter(v)
	req := httptest.NewRequest(http.MethodGet, "/api/trips/", nil)
	req.Header.Set("Authorization", "Bearer   ")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if v.got != "" {
		t.Errorf("verifier should not be called, got token %q", v.got)
	}
}

func TestAuth_VerifierError(t *testing.T) {
	r := newAuthRouter(&stubVerifier{err: errors.New("expired token")})
	req := httptest.NewRequest(http.MethodGet, "/api/trips/", nil)
	req.Header.Set("Authorization", "Bearer stale")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_ValidToken_UIDAndRolePopulated(t *testing.T) {
	v := &stubVerifier{token: &infra.CallerToken{UID: "planner42", Role: "admin"}}
	r := newAuthRouter(v)
	req := httptest.NewRequest(http.MethodGet, "/api/trips/", nil)
	req.Header.Set("Authorization", "Bearer validtoken")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if v.got != "validtoken" {
		t.Errorf("expected verifier to receive validtoken, got %q", v.got)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"uid":"planner42"`) {
		t.Errorf("expected uid planner42 in body, got %s", body)
	}
	if !strings.Contains(body, `"role":"admin"`) {
		t.Errorf("expected role admin in body, got %s", body)
	}
}

func TestAuth_ValidToken_NoRoleClaim(t *testing.T) {
	r := newAuthRouter(&stubVerifier{token: &infra.CallerToken{UID: "traveller7"}})
	req := httptest.NewRequest(http.MethodGet, "/api/trips/", nil)
	req.Header.Set("Authorization", "Bearer validtoken")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"role":""`) {
		t.Errorf("expected empty role, got %s", w.Body.String())
	}
}
