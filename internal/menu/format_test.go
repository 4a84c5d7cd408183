package menu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/menu-assistant/internal/domain"
)

func TestFormat_EmptyCatalogue(t *testing.T) {
	require.Equal(t, "Menu not available.", Format(nil, false))
	require.Equal(t, "Menu not available.", Format([]domain.MenuItem{}, true))
}

func TestFormat_FullLine(t *testing.T) {
	items := []domain.MenuItem{{
		NameFR:        "Margherita",
		NameEN:        "Margherita",
		Price:         "11dt",
		DescriptionFR: "tomate, mozzarella",
		DetailsEN:     "vegetarian",
		CategoryFR:    "Pizzas",
		CategoryEN:    "Pizzas",
	}}

	got := Format(items, true)
	require.Equal(t, "Pizzas / Pizzas: Margherita / Margherita — 11dt — tomate, mozzarella — vegetarian", got)
}

func TestFormat_WithoutCategory(t *testing.T) {
	items := []domain.MenuItem{{
		NameFR:     "Margherita",
		NameEN:     "Margherita",
		Price:      "11dt",
		CategoryFR: "Pizzas",
		CategoryEN: "Pizzas",
	}}

	got := Format(items, false)
	require.Equal(t, "Margherita / Margherita — 11dt", got)
}

func TestFormat_MissingPrice(t *testing.T) {
	items := []domain.MenuItem{{NameFR: "Café", NameEN: "Coffee"}}
	require.Equal(t, "Café / Coffee — price unknown", Format(items, false))
}

func TestFormat_EnglishDescriptionFallback(t *testing.T) {
	items := []domain.MenuItem{{
		NameFR:        "Salade",
		NameEN:        "Salad",
		Price:         "9dt",
		DescriptionEN: "fresh greens",
	}}
	require.Equal(t, "Salade / Salad — 9dt — fresh greens", Format(items, false))
}

func TestFormat_OneLinePerItem(t *testing.T) {
	items := []domain.MenuItem{
		{NameFR: "A", NameEN: "A", Price: "1dt"},
		{NameFR: "B", NameEN: "B", Price: "2dt"},
		{NameFR: "C", NameEN: "C", Price: "3dt"},
	}
	got := Format(items, false)
	require.Len(t, strings.Split(got, "\n"), 3)
}
