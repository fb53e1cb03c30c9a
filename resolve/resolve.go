// Package resolve validates the raw input and output paths of a conversion
// request and derives the output path when none is given.
package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind tags a Result.
type Kind int

const (
	Valid Kind = iota
	InvalidInputPath
	InvalidOutputPath
	NeedsOverwriteConfirmation
)

func (k Kind) String() string {
	switch k {
	case Valid:
		return "Valid"
	case InvalidInputPath:
		return "InvalidInputPath"
	case InvalidOutputPath:
		return "InvalidOutputPath"
	case NeedsOverwriteConfirmation:
		return "NeedsOverwriteConfirmation"
	default:
		return "Unknown"
	}
}

// User-facing reasons.
const (
	ReasonEmptyInput   = "Please select or enter a file to convert."
	ReasonInputDir     = "Input file path is not valid.  Please try again."
	ReasonInputFile    = "Input file is not valid."
	ReasonOutputName   = "Output file name is missing."
	reasonOutputDirFmt = "Output file path (%s) is not valid.  Please try again."
)

// PathInput is what the user typed, unmodified.
type PathInput struct {
	RawInput  string
	RawOutput string
}

// Result is the outcome of Resolve. Dir, Input and Output are set for Valid
// and NeedsOverwriteConfirmation; Reason is set for the two invalid kinds.
type Result struct {
	Kind    Kind
	Dir     string // directory containing the input, used as the compiler's working directory
	Input   string
	Output  string
	Reason  string
	Derived bool // Output was derived from Input
}

// Resolver resolves paths for one target extension.
type Resolver struct {
	// Extension is the target source-file extension without the dot, e.g. "py".
	Extension string
}

// New returns a Resolver for ext; a leading dot is ignored.
func New(ext string) *Resolver {
	return &Resolver{Extension: strings.TrimPrefix(ext, ".")}
}

// Resolve validates raw and decides whether to proceed, reject, or ask before
// overwriting. Paths come back absolute and in host form. A relative output
// path is taken relative to the input's directory, which is where the
// compiler runs.
func (r *Resolver) Resolve(raw PathInput) Result {
	input := normalize(raw.RawInput)
	if input == "" {
		return Result{Kind: InvalidInputPath, Reason: ReasonEmptyInput}
	}

	inDir, inName := split(input)
	if inName == "" || !isDir(inDir) {
		return Result{Kind: InvalidInputPath, Reason: ReasonInputDir}
	}
	if !isFile(input) {
		return Result{Kind: InvalidInputPath, Reason: ReasonInputFile}
	}

	absInput, err := filepath.Abs(filepath.FromSlash(input))
	if err != nil {
		return Result{Kind: InvalidInputPath, Reason: ReasonInputDir}
	}
	workDir := filepath.Dir(absInput)

	output := normalize(raw.RawOutput)
	if output == "" {
		return Result{
			Kind:    Valid,
			Dir:     workDir,
			Input:   absInput,
			Output:  filepath.Join(workDir, stripExt(filepath.Base(absInput))+"."+r.Extension),
			Derived: true,
		}
	}

	shownDir, outName := split(output)
	if outName == "" {
		return Result{Kind: InvalidOutputPath, Reason: ReasonOutputName}
	}
	absOutput := filepath.FromSlash(output)
	if !filepath.IsAbs(absOutput) {
		absOutput = filepath.Join(workDir, absOutput)
	}
	if !isDir(filepath.Dir(absOutput)) {
		return Result{Kind: InvalidOutputPath, Reason: fmt.Sprintf(reasonOutputDirFmt, shownDir)}
	}

	if isFile(absOutput) {
		return Result{Kind: NeedsOverwriteConfirmation, Dir: workDir, Input: absInput, Output: absOutput}
	}

	if !strings.EqualFold(ext(filepath.Base(absOutput)), r.Extension) {
		absOutput += "." + r.Extension
	}
	return Result{Kind: Valid, Dir: workDir, Input: absInput, Output: absOutput}
}

// normalize turns backslashes into forward slashes and trims blanks.
func normalize(p string) string {
	return strings.ReplaceAll(strings.TrimSpace(p), `\`, "/")
}

// split cuts a slash path at its last separator. A path without a separator
// lives in the current directory; a path directly under the root keeps "/".
func split(p string) (dir, name string) {
	i := strings.LastIndex(p, "/")
	switch {
	case i < 0:
		return ".", p
	case i == 0:
		return "/", p[1:]
	default:
		return p[:i], p[i+1:]
	}
}

// ext returns the text after the last dot of name, or "" when there is none.
func ext(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return name[i+1:]
}

// stripExt removes the text from the last dot of name onwards.
func stripExt(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i]
	}
	return name
}

func isDir(p string) bool {
	info, err := os.Stat(filepath.FromSlash(p))
	return err == nil && info.IsDir()
}

func isFile(p string) bool {
	info, err := os.Stat(filepath.FromSlash(p))
	return err == nil && info.Mode().IsRegular()
}
