package monitor

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestTailFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	var b strings.Builder
	for i := 1; i <= 10; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := tailFile(path, 3)
	if err != nil {
		t.Fatalf("tailFile returned error: %v", err)
	}
	if string(got) != "line 8\nline 9\nline 10\n" {
		t.Fatalf("unexpected tail %q", got)
	}
}

func TestLogsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("a\nb\nc\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	router := gin.New()
	RegisterLogsRoute(router.Group("/admin"), func() string { return path })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/logs?lines=2", nil))
	if w.Code != http.StatusOK || w.Body.String() != "b\nc\n" {
		t.Fatalf("unexpected response %d %q", w.Code, w.Body.String())
	}

	missing := gin.New()
	RegisterLogsRoute(missing.Group("/admin"), func() string { return filepath.Join(t.TempDir(), "none.log") })
	w = httptest.NewRecorder()
	missing.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/logs", nil))
	if w.Code != http.StatusOK || w.Body.Len() != 0 {
		t.Fatalf("missing log should be empty, got %d %q", w.Code, w.Body.String())
	}
}
