package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"media-clipper/internal/config"
	"media-clipper/internal/logging"
	"media-clipper/internal/workspace"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// The workspace manager logs through the service logger; keep the
	// tool's own output readable.
	logging.SetLevel(logging.LevelWarn)

	spaces, err := workspace.NewManager(cfg.ScratchDir, cfg.WorkspaceTTL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Make sure SCRATCH_DIR is set correctly (current: %s)\n", cfg.ScratchDir)
		os.Exit(1)
	}

	switch command {
	case "list":
		if !listWorkspaces(spaces) {
			os.Exit(1)
		}
	case "sweep":
		if !sweepWorkspaces(spaces) {
			os.Exit(1)
		}
	case "purge":
		force := len(os.Args) > 2 && (os.Args[2] == "-f" || os.Args[2] == "--force")
		if !purgeWorkspaces(spaces, os.Stdin, force) {
			os.Exit(1)
		}
	default:
		// Sanitize command input using allowlist to break taint chain
		sanitized := sanitizeCommand(command)
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", sanitized)
		printUsage()
		os.Exit(1)
	}
}

// sanitizeCommand returns a safe representation of a command string for display.
// It uses an allowlist approach, replacing any character that is not alphanumeric,
// a hyphen, or an underscore with '_'.
func sanitizeCommand(cmd string) string {
	var b strings.Builder
	b.Grow(len(cmd))
	for _, r := range cmd {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func printUsage() {
	fmt.Println("Media Clipper Scratch Directory Management")
	fmt.Println("")
	fmt.Println("Usage: scratchctl <command>")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list        - List workspaces under the scratch root")
	fmt.Println("  sweep       - Remove workspaces older than the TTL")
	fmt.Println("  purge [-f]  - Remove all workspaces (asks first without -f)")
	fmt.Println("")
	fmt.Println("Environment:")
	fmt.Println("  SCRATCH_DIR   - Scratch root directory (default: $TMPDIR/media-clipper)")
	fmt.Println("  WORKSPACE_TTL - Workspace time-to-live (default: 1h)")
	fmt.Println("  CONFIG_FILE   - Optional TOML configuration file")
}

func listWorkspaces(spaces *workspace.Manager) bool {
	entries, err := spaces.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return false
	}

	if len(entries) == 0 {
		fmt.Printf("No workspaces under %s.\n", spaces.Root())
		return true
	}

	ttl := spaces.TTL()
	var totalSize int64
	expired := 0

	fmt.Printf("%-38s %-12s %-10s %s\n", "WORKSPACE", "AGE", "SIZE", "STATUS")
	for _, entry := range entries {
		age := time.Since(entry.ModTime).Round(time.Second)
		status := "active"
		if age > ttl {
			status = "expired"
			expired++
		}
		totalSize += entry.Size
		fmt.Printf("%-38s %-12s %-10s %s\n", entry.Name, age.String(), formatBytes(entry.Size), status)
	}

	fmt.Printf("\n%d workspace(s), %s total, %d expired (TTL %s)\n",
		len(entries), formatBytes(totalSize), expired, ttl)
	return true
}

func sweepWorkspaces(spaces *workspace.Manager) bool {
	removed, err := spaces.Sweep()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Sweep failed: %v\n", err)
		return false
	}

	fmt.Printf("Removed %d workspace(s) older than %s.\n", removed, spaces.TTL())
	return true
}

func purgeWorkspaces(spaces *workspace.Manager, in io.Reader, force bool) bool {
	entries, err := spaces.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return false
	}

	if len(entries) == 0 {
		fmt.Printf("No workspaces under %s.\n", spaces.Root())
		return true
	}

	if !force {
		fmt.Printf("This removes all %d workspace(s) under %s, including any still in use by a running service.\n",
			len(entries), spaces.Root())
		if !confirm(in, "Continue? [y/N]: ") {
			fmt.Println("Aborted.")
			return false
		}
	}

	removed, err := spaces.Purge()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Purge failed: %v\n", err)
		return false
	}

	fmt.Printf("Removed %d workspace(s).\n", removed)
	return true
}

// confirm prompts and accepts y or yes, case-insensitive. Anything
// else, including a read error, declines.
func confirm(in io.Reader, prompt string) bool {
	fmt.Print(prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// formatBytes formats bytes into human-readable string
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return strconv.FormatInt(b, 10) + " B"
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return strconv.FormatFloat(float64(b)/float64(div), 'f', 1, 64) + " " + string("KMGTPE"[exp]) + "iB"
}
