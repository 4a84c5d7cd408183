package service

import (
	"regexp"
	"strings"

	"github.com/spec-kit/menu-assistant/internal/domain"
)

// recommendPattern spots reply lines that look like a dish recommendation in
// either language.
var recommendPattern = regexp.MustCompile(`(?i)(recommander|recommend|suggérer|suggest)\s+(.+)$`)

var alternativeSuffixes = []string{
	"comme alternative",
	"as an alternative",
}

// guardReply rewrites recommendation lines naming a dish absent from the
// catalogue, substituting a sandwich-category item when one exists. Best
// effort only, not a hard guarantee.
func guardReply(reply string, catalogue []domain.MenuItem) string {
	if reply == "" || len(catalogue) == 0 {
		return reply
	}

	lines := strings.Split(reply, "\n")
	for i, line := range lines {
		m := recommendPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := trimRecommendedName(m[2])
		if name == "" || menuItemExists(catalogue, name) {
			continue
		}
		if generic, ok := sandwichItem(catalogue); ok {
			lines[i] = strings.Replace(line, name, generic.NameFR+" / "+generic.NameEN, 1)
		}
	}
	return strings.Join(lines, "\n")
}

func trimRecommendedName(raw string) string {
	name := strings.TrimSpace(raw)
	lower := strings.ToLower(name)
	for _, suffix := range alternativeSuffixes {
		if idx := strings.Index(lower, suffix); idx >= 0 {
			name = strings.TrimSpace(name[:idx])
			break
		}
	}
	return strings.Trim(name, " .,!?\"'")
}

// menuItemExists matches in both directions because the captured phrase may
// carry surrounding prose ("Margherita, a classic choice").
func menuItemExists(catalogue []domain.MenuItem, name string) bool {
	needle := strings.ToLower(name)
	for _, it := range catalogue {
		fr := strings.ToLower(it.NameFR)
		en := strings.ToLower(it.NameEN)
		if fr != "" && (strings.Contains(fr, needle) || strings.Contains(needle, fr)) {
			return true
		}
		if en != "" && (strings.Contains(en, needle) || strings.Contains(needle, en)) {
			return true
		}
	}
	return false
}

func sandwichItem(catalogue []domain.MenuItem) (domain.MenuItem, bool) {
	for _, it := range catalogue {
		if strings.Contains(strings.ToLower(it.CategoryFR), "sandwich") ||
			strings.Contains(strings.ToLower(it.CategoryEN), "sandwich") {
			return it, true
		}
	}
	return domain.MenuItem{}, false
}
