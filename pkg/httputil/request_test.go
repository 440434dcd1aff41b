package httputil

import (
	"net/url"
	"testing"
)

func TestRequestWithQueryDoesNotMutate(t *testing.T) {
	base := NewRequest("https://api.github.com/user/repos", map[string]string{"Accept": "application/vnd.github+json"})
	paged := base.WithPage(2, 50)

	if base.URL() != "https://api.github.com/user/repos" {
		t.Errorf("base URL changed: %s", base.URL())
	}
	u, err := url.Parse(paged.URL())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if u.Query().Get("page") != "2" || u.Query().Get("per_page") != "50" {
		t.Errorf("paged URL = %s", paged.URL())
	}
}

func TestRequestKeepsExistingQuery(t *testing.T) {
	req := NewRequest("https://api.github.com/repos/o/r/pulls?state=all", nil).WithQuery("sort", "created")
	u, _ := url.Parse(req.URL())
	if u.Query().Get("state") != "all" || u.Query().Get("sort") != "created" {
		t.Errorf("URL() = %s, want both query parameters", req.URL())
	}
}

func TestNewRequestCopiesHeaders(t *testing.T) {
	headers := map[string]string{"Authorization": "Bearer a"}
	req := NewRequest("https://api.github.com", headers)
	headers["Authorization"] = "Bearer b"

	if got := req.Header().Get("Authorization"); got != "Bearer a" {
		t.Errorf("Authorization = %q, want copy taken at construction", got)
	}

	h := req.Header()
	h.Set("Authorization", "Bearer c")
	if got := req.Header().Get("Authorization"); got != "Bearer a" {
		t.Errorf("Header() returned shared map: %q", got)
	}

	other := req.WithHeader("X-Test", "1")
	if req.Header().Get("X-Test") != "" || other.Header().Get("X-Test") != "1" {
		t.Error("WithHeader() should return a modified copy")
	}
}

func TestZeroRequestWith(t *testing.T) {
	var r Request
	if got := r.WithHeader("Accept", "x").Header().Get("Accept"); got != "x" {
		t.Errorf("Accept = %q", got)
	}
}
