package app

import (
	"context"
	"lofi/catalog"
	"lofi/config"
	"lofi/registry"
	"lofi/testing/harness"
	"lofi/testing/snapshot"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHome(t *testing.T, cat *catalog.Catalog) (*home, *harness.Harness) {
	t.Helper()
	t.Setenv(config.HomeEnv, t.TempDir())

	h, err := newHome(context.Background(), config.DefaultConfig(), cat, config.LoadState())
	require.NoError(t, err)
	return h, harness.New(t, h, 100, 30)
}

// persisted reads the channel record back from disk.
func persisted(t *testing.T) registry.State {
	t.Helper()
	s, err := registry.NewStorage(config.LoadState()).Load()
	require.NoError(t, err)
	return s
}

func TestEnterSelectsCursorAndPlays(t *testing.T) {
	m, h := newTestHome(t, catalog.Default())
	require.Equal(t, 0, m.registry.SelectedIndex())

	h.Press("down", "down", "enter")

	assert.Equal(t, 2, m.registry.SelectedIndex())
	assert.True(t, m.player.Playing())
	assert.True(t, m.ticking, "playing should schedule a progress tick")
	assert.Equal(t, 2, persisted(t).SelectedIndex)
}

func TestNextAndPrevWrap(t *testing.T) {
	m, h := newTestHome(t, catalog.Default())

	h.Press("h")
	assert.Equal(t, 6, m.registry.SelectedIndex())
	assert.Equal(t, 6, m.list.Cursor(), "cursor follows the selection")

	h.Press("l", "l")
	assert.Equal(t, 1, m.registry.SelectedIndex())
}

func TestAddChannel(t *testing.T) {
	m, h := newTestHome(t, catalog.Default())

	h.Press("n")
	require.Equal(t, stateAddChannel, m.state)
	h.Type("Rainy Night")
	h.Press("tab")
	h.Type("https://www.youtube.com/watch?v=abc")
	h.Press("ctrl+s")

	assert.Equal(t, stateDefault, m.state)
	require.Equal(t, 8, m.registry.Len())
	added, err := m.registry.At(7)
	require.NoError(t, err)
	assert.Equal(t, "Rainy Night", added.Name)
	assert.True(t, added.IsCustom)
	assert.Equal(t, 7, m.list.Cursor())
	assert.Equal(t, 0, m.registry.SelectedIndex(), "adding does not change the selection")

	saved := persisted(t)
	require.Len(t, saved.CustomChannels, 1)
	assert.Equal(t, added.ID, saved.CustomChannels[0].ID)
}

func TestAddChannelValidationKeepsForm(t *testing.T) {
	m, h := newTestHome(t, catalog.Default())

	h.Press("n")
	h.Type("No URL")
	h.Press("ctrl+s")

	assert.Equal(t, stateAddChannel, m.state)
	require.NotNil(t, m.formOverlay)
	assert.Equal(t, "No URL", m.formOverlay.Value(0))
	assert.ErrorIs(t, m.errBox.Error(), registry.ErrValidation)
	assert.Equal(t, 7, m.registry.Len())

	h.Press("esc")
	assert.Equal(t, stateDefault, m.state)
	assert.Nil(t, m.formOverlay)
}

func TestEditCatalogChannelCreatesCopy(t *testing.T) {
	m, h := newTestHome(t, catalog.Default())

	h.Press("e")
	require.Equal(t, stateEditChannel, m.state)
	assert.Equal(t, "Lofi Girl", m.formOverlay.Value(0))
	h.Type(" Remix")
	h.Press("ctrl+s")

	assert.Equal(t, stateDefault, m.state)
	require.Equal(t, 7, m.registry.Len())
	last, err := m.registry.At(6)
	require.NoError(t, err)
	assert.Equal(t, "Lofi Girl Remix", last.Name)
	assert.True(t, last.IsCustom)
	assert.Equal(t, 6, m.list.Cursor())
	assert.Equal(t, 0, m.registry.SelectedIndex())
	assert.Equal(t, []int{0}, persisted(t).HiddenCatalogIndices)
}

func TestDeleteChannelConfirm(t *testing.T) {
	m, h := newTestHome(t, catalog.Default())

	h.Press("d")
	require.Equal(t, stateConfirm, m.state)
	snapshot.New(t).AssertContains(h.View(), "This will hide the default channel.")

	h.Press("n")
	assert.Equal(t, stateDefault, m.state)
	assert.Equal(t, 7, m.registry.Len())

	h.Press("d", "y")
	assert.Equal(t, stateDefault, m.state)
	assert.Equal(t, 6, m.registry.Len())
	assert.Equal(t, []int{0}, persisted(t).HiddenCatalogIndices)
}

func TestDeleteLastChannelRefused(t *testing.T) {
	cat := catalog.New([]catalog.Entry{{Name: "Only", URL: "https://www.youtube.com/watch?v=only"}})
	m, h := newTestHome(t, cat)

	h.Press("d")

	assert.Equal(t, stateDefault, m.state)
	assert.ErrorIs(t, m.errBox.Error(), registry.ErrLastChannel)
	assert.Equal(t, 1, m.registry.Len())
}

func TestCopyURL(t *testing.T) {
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { copyToClipboard = orig })

	m, h := newTestHome(t, catalog.Default())
	h.Press("down", "y")

	ch, err := m.registry.At(1)
	require.NoError(t, err)
	assert.Equal(t, ch.URL, copied)
}

func TestVolumeAndTheme(t *testing.T) {
	m, h := newTestHome(t, catalog.Default())

	h.Press("+")
	assert.InDelta(t, 0.75, m.player.Volume(), 1e-9)

	h.Press("m")
	assert.Zero(t, m.player.Volume())

	h.Press("t")
	assert.Equal(t, "light", m.player.Theme().ID)
	assert.Equal(t, "light", config.LoadState().GetTheme())
}

func TestEffectsPanel(t *testing.T) {
	m, h := newTestHome(t, catalog.Default())

	h.Press("f")
	require.Equal(t, stateEffects, m.state)

	h.Press(" ")
	assert.True(t, m.mixer.IsActive("rain"))
	snapshot.New(t).AssertContains(h.View(), "Rain")

	h.Press("]")
	assert.InDelta(t, 0.6, m.mixer.MasterVolume(), 1e-9)

	h.Press("esc")
	assert.Equal(t, stateDefault, m.state)
	snapshot.New(t).AssertContains(h.View(), "Rain")
}

func TestAddEffectRejectsNonYouTube(t *testing.T) {
	m, h := newTestHome(t, catalog.Default())

	h.Press("f", "n")
	require.Equal(t, stateAddEffect, m.state)
	h.Type("Creek")
	h.Press("tab")
	h.Type("https://example.com/creek")
	h.Press("enter")

	assert.Equal(t, stateAddEffect, m.state, "the form stays open on a bad url")
	assert.Equal(t, "Creek", m.formOverlay.Value(0))

	h.Press("esc")
	assert.Equal(t, stateEffects, m.state)
}

func TestHelpScreen(t *testing.T) {
	m, h := newTestHome(t, catalog.Default())

	h.Press("?")
	require.Equal(t, stateHelp, m.state)
	snapshot.New(t).AssertContains(h.View(), "Playback")

	h.Press("x")
	assert.Equal(t, stateDefault, m.state)
}

func TestRestoreDefaults(t *testing.T) {
	m, h := newTestHome(t, catalog.Default())

	h.Press("d", "y")
	require.Equal(t, 6, m.registry.Len())

	h.Press("R", "y")
	assert.Equal(t, 7, m.registry.Len())
	assert.Empty(t, persisted(t).HiddenCatalogIndices)
}

func TestSyncPicksUpExternalChanges(t *testing.T) {
	m, _ := newTestHome(t, catalog.Default())

	other := config.LoadState()
	require.NoError(t, other.SetTheme("ocean"))
	state := registry.DefaultState()
	state.HiddenCatalogIndices = []int{0, 1}
	require.NoError(t, registry.NewStorage(other).Save(state))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(other.Path(), future, future))

	m.Update(tickSyncMsg{})

	assert.Equal(t, 5, m.registry.Len())
	assert.Equal(t, "ocean", m.player.Theme().ID)
	assert.Equal(t, 5, m.list.NumChannels())
}

func TestProgressTick(t *testing.T) {
	m, h := newTestHome(t, catalog.Default())

	m.Update(progressTickMsg{})
	assert.Zero(t, m.registry.Progress(), "paused players do not advance")

	h.Press(" ")
	m.Update(progressTickMsg{})
	assert.Equal(t, time.Second, m.registry.Progress())

	h.Press("l")
	assert.Zero(t, m.registry.Progress(), "changing channel resets progress")
}

func TestViewAtCommonSizes(t *testing.T) {
	harness.RunWithCommonSizes(t, func(t *testing.T, size harness.TerminalSize) {
		_, h := newTestHome(t, catalog.Default())
		h.Resize(size.Width, size.Height)

		snap := snapshot.New(t)
		view := h.View()
		snap.AssertContains(view, "Channels")
		snap.AssertContains(view, "Lofi Girl")
		snap.AssertNotContains(view, "terminal too small")
	})
}

func TestViewTooSmall(t *testing.T) {
	_, h := newTestHome(t, catalog.Default())
	h.Resize(40, 10)

	snapshot.New(t).AssertContains(h.View(), "terminal too small")
}

// writeHiddenElsewhere saves a channel record through a second state handle,
// the way another lofi process would, and lets the model sync it.
func writeHiddenElsewhere(t *testing.T, m *home, hidden ...int) {
	t.Helper()
	other := config.LoadState()
	state := registry.DefaultState()
	state.HiddenCatalogIndices = hidden
	require.NoError(t, registry.NewStorage(other).Save(state))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(other.Path(), future, future))

	m.Update(tickSyncMsg{})
}

func TestDeleteConfirmAfterSyncHitsChosenChannel(t *testing.T) {
	m, h := newTestHome(t, catalog.Default())

	h.Press("down", "d")
	require.Equal(t, stateConfirm, m.state)

	writeHiddenElsewhere(t, m, 0)
	require.Equal(t, 6, m.registry.Len())

	h.Press("y")
	require.NoError(t, m.errBox.Error())
	assert.Equal(t, []int{0, 1}, persisted(t).HiddenCatalogIndices)
	for _, ch := range m.registry.Visible() {
		assert.NotEqual(t, "Synthwave Radio", ch.Name)
	}
	assert.Equal(t, "Chillhop Radio", m.registry.Visible()[0].Name)
}

func TestDeleteConfirmAfterChannelWentAway(t *testing.T) {
	m, h := newTestHome(t, catalog.Default())

	h.Press("down", "d")
	writeHiddenElsewhere(t, m, 1)

	h.Press("y")
	assert.Equal(t, stateDefault, m.state)
	assert.ErrorIs(t, m.errBox.Error(), registry.ErrNotFound)
	assert.Equal(t, []int{1}, persisted(t).HiddenCatalogIndices)
	assert.Equal(t, 6, m.registry.Len())
}

func TestEditSubmitAfterSyncHitsChosenChannel(t *testing.T) {
	m, h := newTestHome(t, catalog.Default())

	h.Press("down", "e")
	require.Equal(t, stateEditChannel, m.state)
	require.Equal(t, "Synthwave Radio", m.formOverlay.Value(0))

	writeHiddenElsewhere(t, m, 0)

	h.Type(" FM")
	h.Press("ctrl+s")

	require.NoError(t, m.errBox.Error())
	saved := persisted(t)
	assert.Equal(t, []int{0, 1}, saved.HiddenCatalogIndices)
	require.Len(t, saved.CustomChannels, 1)
	assert.Equal(t, "Synthwave Radio FM", saved.CustomChannels[0].Name)
	assert.Equal(t, "Chillhop Radio", m.registry.Visible()[0].Name)
}
