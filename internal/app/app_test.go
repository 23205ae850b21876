package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kestrel7/stockpile/internal/session"
)

func TestBuildRuntimeDefaults(t *testing.T) {
	t.Setenv("STOCKPILE_API_URL", "")
	t.Setenv("STOCKPILE_THEME", "")

	dir := t.TempDir()
	rt, err := buildRuntime(Options{
		ConfigPath:  filepath.Join(dir, "missing.toml"),
		SessionPath: filepath.Join(dir, "session.toml"),
	})
	if err != nil {
		t.Fatalf("buildRuntime: %v", err)
	}

	if rt.hasSess {
		t.Fatal("no session file on disk, hasSess should be false")
	}
	if rt.cfg.PageSize != 5 {
		t.Fatalf("default page size = %d, want 5", rt.cfg.PageSize)
	}
	if rt.store.Len() != 0 {
		t.Fatalf("fresh store holds %d products", rt.store.Len())
	}
}

func TestBuildRuntimeLoadsStoredSession(t *testing.T) {
	t.Setenv("STOCKPILE_API_URL", "")
	t.Setenv("STOCKPILE_THEME", "")

	dir := t.TempDir()
	sessPath := filepath.Join(dir, "session.toml")
	sess := session.Session{Token: "abc123", Email: "admin@example.com"}
	if err := session.Save(sessPath, sess, time.Now()); err != nil {
		t.Fatalf("save session: %v", err)
	}

	rt, err := buildRuntime(Options{
		ConfigPath:  filepath.Join(dir, "missing.toml"),
		SessionPath: sessPath,
	})
	if err != nil {
		t.Fatalf("buildRuntime: %v", err)
	}
	if !rt.hasSess {
		t.Fatal("stored session not loaded")
	}
	if rt.sess.Email != "admin@example.com" {
		t.Fatalf("session email = %q", rt.sess.Email)
	}
}

func TestRunExportWritesSpreadsheet(t *testing.T) {
	t.Setenv("STOCKPILE_THEME", "")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			t.Errorf("path = %q, want /products", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"title":"Mug","price":"9.50"},{"id":2,"title":"Bowl","price":"14.00"}]`))
	}))
	defer srv.Close()
	t.Setenv("STOCKPILE_API_URL", srv.URL)

	dir := t.TempDir()
	out := filepath.Join(dir, "products.xlsx")
	opts := Options{
		ConfigPath:  filepath.Join(dir, "missing.toml"),
		SessionPath: filepath.Join(dir, "session.toml"),
	}
	if err := RunExport(context.Background(), opts, out); err != nil {
		t.Fatalf("RunExport: %v", err)
	}

	if _, err := os.Stat(out); err != nil {
		t.Fatalf("exported file: %v", err)
	}
}

func TestRunImportRequiresSession(t *testing.T) {
	t.Setenv("STOCKPILE_API_URL", "")
	t.Setenv("STOCKPILE_THEME", "")

	dir := t.TempDir()
	opts := Options{
		ConfigPath:  filepath.Join(dir, "missing.toml"),
		SessionPath: filepath.Join(dir, "session.toml"),
	}
	err := RunImport(context.Background(), opts, filepath.Join(dir, "in.xlsx"))
	if err == nil {
		t.Fatal("import without a session should fail")
	}
}
