package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"media-clipper/internal/workspace"
)

func TestPrintUsage(t *testing.T) {
	// Should not panic
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("printUsage panicked: %v", r)
		}
	}()

	printUsage()
}

func TestSanitizeCommand(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    string
	}{
		{"Plain command", "list", "list"},
		{"Hyphens and underscores pass", "some-cmd_2", "some-cmd_2"},
		{"Spaces replaced", "rm -rf /", "rm_-rf__"},
		{"Control characters replaced", "purge\x1b[31m", "purge____"},
		{"Empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeCommand(tt.command); got != tt.want {
				t.Errorf("sanitizeCommand(%q) = %q, want %q", tt.command, got, tt.want)
			}
		})
	}
}

func newTestManager(t *testing.T, ttl time.Duration) *workspace.Manager {
	t.Helper()

	spaces, err := workspace.NewManager(filepath.Join(t.TempDir(), "scratch"), ttl)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return spaces
}

// stageWorkspace creates a workspace directory by hand and backdates it,
// the way a crashed service run would leave one behind.
func stageWorkspace(t *testing.T, spaces *workspace.Manager, name string, age time.Duration) string {
	t.Helper()

	dir := filepath.Join(spaces.Root(), name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("Failed to create workspace: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "media.mp4"), []byte("stale bytes"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if age > 0 {
		past := time.Now().Add(-age)
		if err := os.Chtimes(dir, past, past); err != nil {
			t.Fatalf("Failed to backdate workspace: %v", err)
		}
	}
	return dir
}

func TestListWorkspacesEmptyIntegration(t *testing.T) {
	spaces := newTestManager(t, time.Hour)

	if !listWorkspaces(spaces) {
		t.Error("Expected listWorkspaces to succeed on an empty root")
	}
}

func TestListWorkspacesIntegration(t *testing.T) {
	spaces := newTestManager(t, time.Hour)
	stageWorkspace(t, spaces, "f8a1c2d3-0000-0000-0000-000000000001", 0)
	stageWorkspace(t, spaces, "f8a1c2d3-0000-0000-0000-000000000002", 2*time.Hour)

	if !listWorkspaces(spaces) {
		t.Error("Expected listWorkspaces to succeed")
	}
}

func TestSweepWorkspacesIntegration(t *testing.T) {
	spaces := newTestManager(t, time.Hour)
	fresh := stageWorkspace(t, spaces, "f8a1c2d3-0000-0000-0000-00000000000a", 0)
	expired := stageWorkspace(t, spaces, "f8a1c2d3-0000-0000-0000-00000000000b", 2*time.Hour)

	if !sweepWorkspaces(spaces) {
		t.Fatal("Expected sweepWorkspaces to succeed")
	}

	if _, err := os.Stat(expired); !os.IsNotExist(err) {
		t.Error("Expected expired workspace to be removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Errorf("Expected fresh workspace to survive, got %v", err)
	}
}

func TestPurgeWorkspacesForceIntegration(t *testing.T) {
	spaces := newTestManager(t, time.Hour)
	first := stageWorkspace(t, spaces, "f8a1c2d3-0000-0000-0000-00000000000c", 0)
	second := stageWorkspace(t, spaces, "f8a1c2d3-0000-0000-0000-00000000000d", 2*time.Hour)

	if !purgeWorkspaces(spaces, strings.NewReader(""), true) {
		t.Fatal("Expected forced purge to succeed")
	}

	for _, dir := range []string{first, second} {
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Errorf("Expected %s to be removed", dir)
		}
	}
}

func TestPurgeWorkspacesConfirmedIntegration(t *testing.T) {
	spaces := newTestManager(t, time.Hour)
	dir := stageWorkspace(t, spaces, "f8a1c2d3-0000-0000-0000-00000000000e", 0)

	if !purgeWorkspaces(spaces, strings.NewReader("y\n"), false) {
		t.Fatal("Expected confirmed purge to succeed")
	}

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("Expected workspace to be removed after confirmation")
	}
}

func TestPurgeWorkspacesDeclinedIntegration(t *testing.T) {
	spaces := newTestManager(t, time.Hour)
	dir := stageWorkspace(t, spaces, "f8a1c2d3-0000-0000-0000-00000000000f", 0)

	if purgeWorkspaces(spaces, strings.NewReader("n\n"), false) {
		t.Fatal("Expected declined purge to return false")
	}

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Expected workspace to survive a declined purge, got %v", err)
	}
}

func TestPurgeWorkspacesEmptyIntegration(t *testing.T) {
	spaces := newTestManager(t, time.Hour)

	// An empty root needs no confirmation at all.
	if !purgeWorkspaces(spaces, strings.NewReader(""), false) {
		t.Error("Expected purge of empty root to succeed")
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"Lowercase y", "y\n", true},
		{"Uppercase Y", "Y\n", true},
		{"Word yes", "yes\n", true},
		{"Uppercase YES", "YES\n", true},
		{"Padded yes", "  yes  \n", true},
		{"No", "n\n", false},
		{"Word no", "no\n", false},
		{"Empty line", "\n", false},
		{"EOF without input", "", false},
		{"Yes without trailing newline", "y", true},
		{"Unrelated text", "maybe\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := confirm(strings.NewReader(tt.input), "Continue? "); got != tt.want {
				t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{10 * 1024 * 1024, "10.0 MiB"},
		{3 * 1024 * 1024 * 1024, "3.0 GiB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.bytes); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
