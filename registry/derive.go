package registry

import (
	"fmt"
	"lofi/catalog"
	"sort"

	"github.com/google/uuid"
)

// catalogNamespace seeds the deterministic ids of catalog-derived channels.
var catalogNamespace = uuid.MustParse("6f1c1f0e-3d4b-4c1e-9a57-2f0b6f3f5c11")

// CatalogID returns the stable id of the catalog entry at slot i.
func CatalogID(i int, e catalog.Entry) uuid.UUID {
	return uuid.NewSHA1(catalogNamespace, []byte(fmt.Sprintf("%d|%s", i, e.URL)))
}

// DeriveVisible computes the visible list: catalog entries whose index is not
// hidden, in catalog order, followed by the custom channels in their stored
// order. Hidden indices outside the catalog are ignored. The result never
// aliases its inputs.
func DeriveVisible(cat *catalog.Catalog, hidden []int, custom []Channel) []Channel {
	hiddenSet := make(map[int]struct{}, len(hidden))
	for _, i := range hidden {
		hiddenSet[i] = struct{}{}
	}

	visible := make([]Channel, 0, cat.Len()+len(custom))
	for i, e := range cat.Entries() {
		if _, ok := hiddenSet[i]; ok {
			continue
		}
		visible = append(visible, Channel{
			ID:            CatalogID(i, e),
			Name:          e.Name,
			URL:           e.URL,
			Description:   e.Description,
			Creator:       e.Creator,
			IsCustom:      false,
			OriginalIndex: i,
		})
	}
	for _, c := range custom {
		c.IsCustom = true
		c.OriginalIndex = NoOriginalIndex
		visible = append(visible, c)
	}
	return visible
}

// countVisibleCatalog returns how many catalog entries survive the hidden set.
func countVisibleCatalog(n int, hidden []int) int {
	seen := make(map[int]struct{}, len(hidden))
	for _, i := range hidden {
		if i >= 0 && i < n {
			seen[i] = struct{}{}
		}
	}
	return n - len(seen)
}

// SanitizeHidden drops indices outside [0, n) and duplicates, and returns the
// remaining set sorted ascending along with a warning per dropped value.
func SanitizeHidden(hidden []int, n int) ([]int, []Warning) {
	var warnings []Warning
	seen := make(map[int]struct{}, len(hidden))
	clean := make([]int, 0, len(hidden))
	for _, i := range hidden {
		if i < 0 || i >= n {
			warnings = append(warnings, Warning{
				Kind:   WarnHiddenOutOfRange,
				Detail: fmt.Sprintf("index %d not in catalog of %d", i, n),
			})
			continue
		}
		if _, dup := seen[i]; dup {
			warnings = append(warnings, Warning{
				Kind:   WarnHiddenDuplicate,
				Detail: fmt.Sprintf("index %d", i),
			})
			continue
		}
		seen[i] = struct{}{}
		clean = append(clean, i)
	}
	sort.Ints(clean)
	return clean, warnings
}

// hide adds i to the hidden set. It is idempotent.
func hide(hidden []int, i int) []int {
	for _, h := range hidden {
		if h == i {
			return hidden
		}
	}
	out := make([]int, len(hidden), len(hidden)+1)
	copy(out, hidden)
	out = append(out, i)
	sort.Ints(out)
	return out
}
