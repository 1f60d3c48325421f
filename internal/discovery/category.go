package discovery

import (
	"slices"

	"github.com/utafrali/storefront/internal/domain"
)

// ToggleCategory returns the category selection after clicking category.
// Choosing All selects only All. Any other category drops All and flips its
// own membership; an empty result falls back to All. The input is not
// modified.
func ToggleCategory(selected []string, category string) []string {
	if category == domain.CategoryAll {
		return []string{domain.CategoryAll}
	}

	out := make([]string, 0, len(selected)+1)
	found := false
	for _, c := range selected {
		switch c {
		case domain.CategoryAll:
		case category:
			found = true
		default:
			out = append(out, c)
		}
	}
	if !found {
		out = append(out, category)
	}
	if len(out) == 0 {
		return []string{domain.CategoryAll}
	}
	return out
}

func matchesCategory(categories []string, category string) bool {
	return len(categories) == 0 ||
		slices.Contains(categories, domain.CategoryAll) ||
		slices.Contains(categories, category)
}
