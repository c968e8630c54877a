// Package snapshot compares rendered views against golden files and checks
// their on-screen size.
package snapshot

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

// GoldenDir is where golden files live relative to the test package.
const GoldenDir = "testdata/golden"

// UpdateEnv rewrites golden files instead of comparing when set to 1.
const UpdateEnv = "UPDATE_GOLDEN"

var (
	csiRegex = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)
	oscRegex = regexp.MustCompile(`\x1b\]8;;[^\x1b]*\x1b\\`)
)

// Snap compares views for one test.
type Snap struct {
	t         *testing.T
	goldenDir string
	update    bool
}

func New(t *testing.T) *Snap {
	return &Snap{
		t:         t,
		goldenDir: GoldenDir,
		update:    os.Getenv(UpdateEnv) == "1",
	}
}

// WithDir sets the golden file directory.
func (s *Snap) WithDir(dir string) *Snap {
	s.goldenDir = dir
	return s
}

// Assert compares view with the golden file called name.
func (s *Snap) Assert(name, view string) {
	s.t.Helper()

	goldenPath := filepath.Join(s.goldenDir, name+".golden")
	got := Normalize(view)

	if s.update {
		if err := os.MkdirAll(s.goldenDir, 0755); err != nil {
			s.t.Fatalf("failed to create golden dir: %v", err)
		}
		if err := os.WriteFile(goldenPath, []byte(got), 0644); err != nil {
			s.t.Fatalf("failed to write golden file: %v", err)
		}
		s.t.Logf("updated %s", goldenPath)
		return
	}

	want, err := os.ReadFile(goldenPath)
	if os.IsNotExist(err) {
		s.t.Fatalf("missing golden file %s, rerun with %s=1\n%s", goldenPath, UpdateEnv, got)
	}
	if err != nil {
		s.t.Fatalf("failed to read golden file: %v", err)
	}
	if string(want) != got {
		s.t.Errorf("%s does not match %s\n\nwant:\n%s\n\ngot:\n%s", name, goldenPath, want, got)
	}
}

// AssertContains fails unless the plain text of view contains substr.
func (s *Snap) AssertContains(view, substr string) {
	s.t.Helper()
	if got := Normalize(view); !strings.Contains(got, substr) {
		s.t.Errorf("view does not contain %q:\n%s", substr, got)
	}
}

// AssertNotContains fails if the plain text of view contains substr.
func (s *Snap) AssertNotContains(view, substr string) {
	s.t.Helper()
	if got := Normalize(view); strings.Contains(got, substr) {
		s.t.Errorf("view unexpectedly contains %q:\n%s", substr, got)
	}
}

// AssertFits fails if view is wider or taller than the terminal.
func (s *Snap) AssertFits(view string, width, height int) {
	s.t.Helper()
	if w := Width(view); w > width {
		s.t.Errorf("view is %d columns wide, terminal has %d", w, width)
	}
	if h := Lines(view); h > height {
		s.t.Errorf("view is %d lines tall, terminal has %d", h, height)
	}
}

// Normalize strips escape codes and trailing whitespace and unifies line endings.
func Normalize(view string) string {
	lines := strings.Split(strings.ReplaceAll(StripANSI(view), "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

// StripANSI removes color codes and hyperlinks.
func StripANSI(s string) string {
	return oscRegex.ReplaceAllString(csiRegex.ReplaceAllString(s, ""), "")
}

// Lines counts the rendered lines.
func Lines(s string) int {
	return strings.Count(s, "\n") + 1
}

// Width returns the widest rendered line in terminal cells.
func Width(s string) int {
	widest := 0
	for _, line := range strings.Split(StripANSI(s), "\n") {
		widest = max(widest, runewidth.StringWidth(line))
	}
	return widest
}
