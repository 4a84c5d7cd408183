package menu

import (
	"strconv"
	"strings"

	"github.com/spec-kit/menu-assistant/internal/domain"
)

// NotAvailable is the prompt fragment used when the catalogue is empty.
const NotAvailable = "Menu not available."

// Format renders the items as one compact prompt-ready line each.
func Format(items []domain.MenuItem, includeCategory bool) string {
	if len(items) == 0 {
		return NotAvailable
	}

	lines := make([]string, 0, len(items))
	for _, it := range items {
		var b strings.Builder
		if includeCategory && it.CategoryFR != "" {
			b.WriteString(it.CategoryFR + " / " + it.CategoryEN + ": ")
		}
		b.WriteString(it.NameFR + " / " + it.NameEN)
		if it.Price != "" {
			b.WriteString(" — " + it.Price)
		} else {
			b.WriteString(" — price unknown")
		}
		if desc := firstNonEmpty(it.DescriptionFR, it.DescriptionEN); desc != "" {
			b.WriteString(" — " + desc)
		}
		if details := firstNonEmpty(it.DetailsFR, it.DetailsEN); details != "" {
			b.WriteString(" — " + details)
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
