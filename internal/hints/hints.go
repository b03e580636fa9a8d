// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/deer-in-haze/go-csvgallery/internal/fileutil"
)

// maxListed caps how many candidates a hint names.
const maxListed = 5

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForDatasetNotFound lists the CSV files that do exist in dataDir.
func ForDatasetNotFound(dataDir string) string {
	matches, err := filepath.Glob(filepath.Join(dataDir, "*.csv"))
	if err != nil || len(matches) == 0 {
		return format("no .csv files in " + dataDir + "; check the data directory")
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	sort.Strings(names)
	return format("available: " + joinLimited(names))
}

// ForMissingColumns suggests present columns that differ from a missing one
// only by case or surrounding whitespace.
func ForMissingColumns(missing, present []string) string {
	var hints []string
	for _, m := range missing {
		for _, p := range present {
			if p != m && strings.EqualFold(strings.TrimSpace(p), m) {
				hints = append(hints, "rename column "+quote(p)+" to "+quote(m))
			}
		}
	}
	return formatHints(hints)
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

func joinLimited(items []string) string {
	if len(items) <= maxListed {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:maxListed], ", ") + ", ..."
}

func quote(s string) string {
	return `"` + s + `"`
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
