package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	tu "termkit/internal/testutil"
)

func TestDirUsesXDGConfigHome(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only honored on linux")
	}
	tmp := t.TempDir()
	defer tu.WithEnv(t, "XDG_CONFIG_HOME", tmp)()
	defer tu.WithEnv(t, "HOME", tmp)() // fallback

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir: %v", err)
	}
	if dir != filepath.Join(tmp, "termkit") {
		t.Fatalf("Dir = %q, want under %q", dir, tmp)
	}
}

func TestResolveScriptByName(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only honored on linux")
	}
	tmp := t.TempDir()
	defer tu.WithEnv(t, "XDG_CONFIG_HOME", tmp)()
	defer tu.WithEnv(t, "HOME", tmp)()

	scripts, err := ScriptsDir()
	if err != nil {
		t.Fatalf("ScriptsDir: %v", err)
	}
	if err := os.MkdirAll(scripts, 0o755); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(scripts, "smoke.yaml")
	if err := os.WriteFile(target, []byte("- key: enter\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ResolveScript("smoke")
	if err != nil {
		t.Fatalf("ResolveScript: %v", err)
	}
	if got != target {
		t.Fatalf("ResolveScript = %q, want %q", got, target)
	}
}

func TestResolveScriptKeepsPaths(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "run.yaml")
	if err := os.WriteFile(path, []byte("- key: enter\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ResolveScript(path)
	if err != nil {
		t.Fatalf("ResolveScript: %v", err)
	}
	if got != path {
		t.Fatalf("ResolveScript = %q, want %q", got, path)
	}
	if !strings.Contains(got, string(os.PathSeparator)) {
		t.Fatalf("expected a path, got %q", got)
	}
}
