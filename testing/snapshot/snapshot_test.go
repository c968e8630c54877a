package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "lofi beats", want: "lofi beats"},
		{name: "color", input: "\x1b[38;5;62mCH1\x1b[0m", want: "CH1"},
		{name: "cursor visibility", input: "\x1b[?25lpaused\x1b[?25h", want: "paused"},
		{name: "hyperlink", input: "\x1b]8;;https://youtu.be/x\x1b\\watch\x1b]8;;\x1b\\", want: "watch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripANSI(tt.input))
		})
	}
}

func TestWidthCountsCells(t *testing.T) {
	assert.Equal(t, 5, Width("\x1b[1m♪ now\x1b[0m\nCH1"))
	assert.Equal(t, 4, Width("日本"), "wide runes take two cells")
	assert.Equal(t, 0, Width(""))
}

func TestLines(t *testing.T) {
	assert.Equal(t, 1, Lines("single"))
	assert.Equal(t, 3, Lines("a\n\x1b[31mb\x1b[0m\nc"))
}

func TestNormalize(t *testing.T) {
	got := Normalize("Channels   \r\n\x1b[31m★ Mine\x1b[0m\t\n")
	assert.Equal(t, "Channels\n★ Mine\n", got)
}

func TestAssertAgainstGoldenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "view.golden"), []byte("CH1\nChill Study"), 0644))

	snap := New(t).WithDir(dir)
	snap.Assert("view", "\x1b[1mCH1\x1b[0m  \nChill Study")
	snap.AssertContains("\x1b[1mChill Study\x1b[0m", "Chill Study")
	snap.AssertNotContains("Chill Study", "Jazz")
	snap.AssertFits("abc\ndef", 3, 2)
}

func TestUpdateWritesGoldenFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "golden")
	t.Setenv(UpdateEnv, "1")

	New(t).WithDir(dir).Assert("fresh", "hello  ")

	data, err := os.ReadFile(filepath.Join(dir, "fresh.golden"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}
