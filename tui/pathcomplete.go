package tui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PathCompletions returns the directories and files under input's directory
// whose names start with input's last element. Files are only offered when
// their extension is one of exts (case-insensitive, without dots); an empty
// exts offers directories only. Directories carry a trailing separator so a
// second completion descends into them.
func PathCompletions(input string, exts []string) ([]string, error) {
	if input == "" {
		input = "." + string(filepath.Separator)
	}
	// Expand ~ to home dir
	if strings.HasPrefix(input, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			input = filepath.Join(home, input[1:]) + trailingSep(input)
		}
	}

	base, prefix := filepath.Dir(input), filepath.Base(input)
	if strings.HasSuffix(input, "/") || strings.HasSuffix(input, string(filepath.Separator)) {
		base, prefix = filepath.Clean(input), ""
	}

	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, err
	}

	var dirs, files []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		// Hidden entries only when asked for
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(prefix, ".") {
			continue
		}
		full := filepath.Join(base, name)
		if entry.IsDir() {
			dirs = append(dirs, full+string(filepath.Separator))
			continue
		}
		if hasExt(name, exts) {
			files = append(files, full)
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)
	return append(dirs, files...), nil
}

func trailingSep(p string) string {
	if strings.HasSuffix(p, "/") || strings.HasSuffix(p, string(filepath.Separator)) {
		return string(filepath.Separator)
	}
	return ""
}

func hasExt(name string, exts []string) bool {
	got := strings.TrimPrefix(filepath.Ext(name), ".")
	if got == "" {
		return false
	}
	for _, e := range exts {
		if strings.EqualFold(got, strings.TrimPrefix(e, ".")) {
			return true
		}
	}
	return false
}
