package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/v-scorm/scormgen/internal/rbac"
)

func newTestAuth(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("segreto"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return NewAuthService("test-secret", "admin", string(hash))
}

func TestLoginIssuesAuthorToken(t *testing.T) {
	a := newTestAuth(t)
	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "segreto"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	LoginHandler(a)(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d (%s)", rec.Code, rec.Body)
	}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	claims, err := a.Parse(resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Sub != "admin" || claims.Role != "author" {
		t.Fatalf("claims %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	a := newTestAuth(t)
	for _, creds := range []map[string]string{
		{"username": "admin", "password": "sbagliata"},
		{"username": "intruso", "password": "segreto"},
	} {
		body, _ := json.Marshal(creds)
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		LoginHandler(a)(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%v: status %d, want 401", creds, rec.Code)
		}
	}
}

func TestJWTMiddleware(t *testing.T) {
	a := newTestAuth(t)
	var gotSub, gotRole string
	h := JWTMiddleware(a)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub = SubjectFromContext(r.Context())
		gotRole = rbac.RoleFromContext(r.Context())
	}))

	tok, err := a.IssueJWT("admin", "author")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/courses", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if gotSub != "admin" || gotRole != "author" {
		t.Fatalf("context sub=%q role=%q", gotSub, gotRole)
	}

	// No header and a token signed with another secret are both rejected.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/courses", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: status %d", rec.Code)
	}

	other := NewAuthService("other-secret", "admin", "")
	tok, _ = other.IssueJWT("admin", "author")
	req = httptest.NewRequest(http.MethodGet, "/courses", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("forged token: status %d", rec.Code)
	}
}
