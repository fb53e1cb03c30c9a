package convert

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	version "github.com/hashicorp/go-version"
	"go.uber.org/zap"
)

const probeTimeout = 5 * time.Second

var versionPattern = regexp.MustCompile(`\d+(\.\d+)+`)

// ToolInfo describes the compiler found on this machine.
type ToolInfo struct {
	Path      string           // resolved executable
	Banner    string           // first line printed by --version
	Version   *version.Version // nil when the banner carries no version
	Supported bool             // false when below the configured minimum
}

// String returns a short human-readable description.
func (ti ToolInfo) String() string {
	if ti.Version == nil {
		return fmt.Sprintf("%s (version unknown)", ti.Path)
	}
	return fmt.Sprintf("%s %s", ti.Path, ti.Version.String())
}

// Probe looks the compiler up and asks it for its version. minVersion may be
// empty to skip the comparison. A failed probe does not stop conversions; the
// caller only reports it.
func (r *Runner) Probe(ctx context.Context, minVersion string) (ToolInfo, error) {
	var minimum *version.Version
	if minVersion != "" {
		v, err := version.NewVersion(minVersion)
		if err != nil {
			return ToolInfo{}, fmt.Errorf("invalid minimum tool version '%s': %w", minVersion, err)
		}
		minimum = v
	}

	path, err := exec.LookPath(r.command[0])
	if err != nil {
		return ToolInfo{}, fmt.Errorf("compiler %q not found: %w", r.command[0], err)
	}
	info := ToolInfo{Path: path, Supported: true}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	args := append(append([]string(nil), r.command[1:]...), "--version")
	cmd := exec.CommandContext(ctx, path, args...)
	configureProcess(cmd)
	cmd.Cancel = func() error { return killProcess(cmd) }
	cmd.WaitDelay = time.Second
	out, err := cmd.CombinedOutput()
	if err != nil && len(out) == 0 {
		return info, fmt.Errorf("failed to query %s version: %w", r.command[0], err)
	}

	info.Banner = firstLine(string(out))
	info.Version = ParseVersion(info.Banner)
	if minimum != nil && info.Version != nil && info.Version.LessThan(minimum) {
		info.Supported = false
	}

	r.logger.Debug("Probed compiler",
		zap.String("path", path),
		zap.String("banner", info.Banner),
		zap.Bool("supported", info.Supported),
	)
	return info, nil
}

// ParseVersion extracts the first dotted version number from s.
func ParseVersion(s string) *version.Version {
	match := versionPattern.FindString(s)
	if match == "" {
		return nil
	}
	v, err := version.NewVersion(match)
	if err != nil {
		return nil
	}
	return v
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
