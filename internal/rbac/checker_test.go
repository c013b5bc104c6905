package rbac

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheckerHas(t *testing.T) {
	c := NewChecker(nil)

	cases := []struct {
		role, perm string
		want       bool
	}{
		{"reviewer", "course:view", true},
		{"reviewer", "course:preview", true},
		{"reviewer", "course:export", false},
		{"reviewer", "course:delete", false},
		{"author", "course:create", true},
		{"author", "course:export", true},
		{"author", "system:admin", false},
		{"admin", "anything:at:all", true},
		{"nobody", "course:view", false},
	}
	for _, tc := range cases {
		if got := c.Has(tc.role, tc.perm); got != tc.want {
			t.Fatalf("Has(%q, %q) = %v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}

	if !c.Any("reviewer", "course:export", "course:preview") {
		t.Fatalf("Any missed a held permission")
	}
	if c.Any("reviewer", "course:export", "course:delete") {
		t.Fatalf("Any granted unheld permissions")
	}
}

func requireStatus(t *testing.T, mw func(http.Handler) http.Handler, role string, want int) {
	t.Helper()
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if role != "" {
		req = req.WithContext(WithRole(context.Background(), role))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != want {
		t.Fatalf("role %q: status %d, want %d", role, rec.Code, want)
	}
}

func TestRequire(t *testing.T) {
	requireStatus(t, Require("course:export"), "author", http.StatusOK)
	requireStatus(t, Require("course:export"), "reviewer", http.StatusForbidden)
	requireStatus(t, Require("course:export"), "", http.StatusForbidden)

	requireStatus(t, RequireAny("course:preview", "course:export"), "reviewer", http.StatusOK)
	requireStatus(t, RequireAny("course:delete", "course:export"), "reviewer", http.StatusForbidden)
}
