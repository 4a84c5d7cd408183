package menu

import (
	"bytes"
	"encoding/json"
	"os"

	"go.uber.org/zap"

	"github.com/spec-kit/menu-assistant/internal/config"
	"github.com/spec-kit/menu-assistant/internal/domain"
)

// Store loads the static menu document and exposes the flat deduplicated
// catalogue. Absence of a menu degrades to an empty catalogue, never an
// error: a prompt without menu context must not fail the chat request.
type Store struct {
	paths  []string
	logger *zap.Logger
}

// NewStore builds a store probing the configured paths in order.
func NewStore(cfg config.MenuConfig, logger *zap.Logger) *Store {
	return &Store{paths: cfg.Paths, logger: logger}
}

// Load reads the first existing menu document and returns the flattened,
// deduplicated item list. Missing files and parse failures are logged and
// yield an empty list.
func (s *Store) Load() []domain.MenuItem {
	for _, path := range s.paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				s.logger.Warn("could not read menu document", zap.String("path", path), zap.Error(err))
			}
			continue
		}

		items := Deduplicate(s.Flatten(raw))
		s.logger.Info("menu loaded", zap.String("path", path), zap.Int("items", len(items)))
		return items
	}

	s.logger.Warn("no menu document found", zap.Strings("paths", s.paths))
	return nil
}

// node is the closed set of menu document shapes: a category (name pair plus
// a child collection) or an item (name pair only). Container keys match
// case-insensitively through encoding/json field resolution.
type node struct {
	NameFR        string `json:"name_fr"`
	NameEN        string `json:"name_en"`
	Price         any    `json:"price"`
	DescriptionFR string `json:"description_fr"`
	DescriptionEN string `json:"description_en"`
	TypeFR        string `json:"type_fr"`
	TypeEN        string `json:"type_en"`
	DetailsFR     string `json:"details_fr"`
	DetailsEN     string `json:"details_en"`

	Items    json.RawMessage `json:"items"`
	Children json.RawMessage `json:"children"`
	Menu     json.RawMessage `json:"menu"`
	Sections json.RawMessage `json:"sections"`
	Products json.RawMessage `json:"products"`
}

func (n *node) containers() []json.RawMessage {
	var out []json.RawMessage
	for _, raw := range []json.RawMessage{n.Items, n.Children, n.Menu, n.Sections, n.Products} {
		if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
			out = append(out, raw)
		}
	}
	return out
}

func (n *node) hasNamePair() bool {
	return n.NameFR != "" && n.NameEN != ""
}

type categoryContext struct {
	fr string
	en string
}

// Flatten walks the arbitrarily nested document and collects items. A node
// with a name pair and a child collection updates the category context for
// its descendants; a node with only a name pair is an item.
func (s *Store) Flatten(doc []byte) []domain.MenuItem {
	var items []domain.MenuItem
	s.walk(doc, categoryContext{}, &items)
	return items
}

func (s *Store) walk(raw json.RawMessage, cat categoryContext, out *[]domain.MenuItem) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return
	}

	switch trimmed[0] {
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			s.logger.Debug("skipping malformed menu array", zap.Error(err))
			return
		}
		for _, elem := range elems {
			s.walk(elem, cat, out)
		}
	case '{':
		var n node
		if err := json.Unmarshal(trimmed, &n); err != nil {
			s.logger.Debug("skipping unrecognized menu node", zap.Error(err))
			return
		}

		containers := n.containers()
		switch {
		case n.hasNamePair() && len(containers) > 0:
			cat = categoryContext{fr: n.NameFR, en: n.NameEN}
		case n.hasNamePair():
			*out = append(*out, domain.MenuItem{
				NameFR:        trim(n.NameFR),
				NameEN:        trim(n.NameEN),
				Price:         priceString(n.Price),
				DescriptionFR: trim(n.DescriptionFR),
				DescriptionEN: trim(n.DescriptionEN),
				TypeFR:        trim(n.TypeFR),
				TypeEN:        trim(n.TypeEN),
				CategoryFR:    cat.fr,
				CategoryEN:    cat.en,
				DetailsFR:     trim(n.DetailsFR),
				DetailsEN:     trim(n.DetailsEN),
			})
		}

		for _, container := range containers {
			s.walk(container, cat, out)
		}
	default:
		// scalars carry no menu shape
	}
}

// Deduplicate collapses entries sharing the composite key; first occurrence
// wins and insertion order is preserved.
func Deduplicate(items []domain.MenuItem) []domain.MenuItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]domain.MenuItem, 0, len(items))
	for _, it := range items {
		key := it.DedupKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}

func priceString(v any) string {
	switch p := v.(type) {
	case string:
		return trim(p)
	case float64:
		return trimFloat(p)
	default:
		return ""
	}
}
