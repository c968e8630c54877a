// Package registry merges the built-in catalog, the user's custom channels and
// the hidden-catalog markers into the single visible channel list, and applies
// select/advance/add/edit/delete to it while keeping the selection valid.
package registry

import (
	"strings"

	"github.com/google/uuid"
)

// NoOriginalIndex marks a channel that does not come from the catalog.
const NoOriginalIndex = -1

// Channel is one entry of the visible list.
type Channel struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Creator     string    `json:"creator"`
	IsCustom    bool      `json:"is_custom"`
	// OriginalIndex is the catalog slot of a catalog-derived channel. It is
	// never persisted: custom channels carry NoOriginalIndex.
	OriginalIndex int `json:"-"`
}

// HasOriginalIndex reports whether c was derived from the catalog.
func (c Channel) HasOriginalIndex() bool {
	return !c.IsCustom && c.OriginalIndex >= 0
}

// sameKey reports whether c and other share the legacy (name, url) identity.
func (c Channel) sameKey(other Channel) bool {
	return c.Name == other.Name && c.URL == other.URL
}

// Draft holds user input for a new or edited channel.
type Draft struct {
	Name        string
	URL         string
	Description string
	Creator     string
}

// DraftOf returns a draft pre-filled from c, as an edit form would be.
func DraftOf(c Channel) Draft {
	return Draft{
		Name:        c.Name,
		URL:         c.URL,
		Description: c.Description,
		Creator:     c.Creator,
	}
}

// Validate checks the required fields. Surrounding whitespace does not count.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return &ValidationError{Field: "name"}
	}
	if strings.TrimSpace(d.URL) == "" {
		return &ValidationError{Field: "url"}
	}
	return nil
}

// custom builds a custom channel from the draft with the given id.
func (d Draft) custom(id uuid.UUID) Channel {
	return Channel{
		ID:            id,
		Name:          strings.TrimSpace(d.Name),
		URL:           strings.TrimSpace(d.URL),
		Description:   d.Description,
		Creator:       d.Creator,
		IsCustom:      true,
		OriginalIndex: NoOriginalIndex,
	}
}

// newID is swapped in tests that need predictable ids.
var newID = uuid.New
