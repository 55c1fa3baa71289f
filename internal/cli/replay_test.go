package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tu "termkit/internal/testutil"
	appver "termkit/internal/version"
)

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return out.String()
}

func TestReplayCommand(t *testing.T) {
	defer tu.WithEnv(t, "NO_COLOR", "1")()

	path := filepath.Join(t.TempDir(), "type.yaml")
	scriptSrc := `
- key: h
- key: i
- key: enter
- paste: done
`
	if err := os.WriteFile(path, []byte(scriptSrc), 0o644); err != nil {
		t.Fatal(err)
	}

	out := runCommand(t, "replay", path, "--cols", "60", "--rows", "20")
	if !strings.Contains(out, "termkit event inspector") {
		t.Fatalf("banner missing from viewport:\n%s", out)
	}
	if !strings.Contains(out, "> done") {
		t.Fatalf("pasted text missing from viewport:\n%s", out)
	}
	if !strings.Contains(out, "3 keys, 1 pastes") {
		t.Fatalf("status line missing from viewport:\n%s", out)
	}
}

func TestReplayRejectsBadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("- key: a\n  paste: b\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"replay", path})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for ambiguous step")
	}
}

func TestVersionCommand(t *testing.T) {
	out := runCommand(t, "version")
	if !strings.Contains(out, appver.AppVersion) {
		t.Fatalf("version output %q missing %q", out, appver.AppVersion)
	}
}
