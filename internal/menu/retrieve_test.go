package menu

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/menu-assistant/internal/domain"
)

func sampleCatalogue() []domain.MenuItem {
	return []domain.MenuItem{
		{NameFR: "Margherita", NameEN: "Margherita", Price: "11dt", CategoryFR: "Pizzas", CategoryEN: "Pizzas", DescriptionEN: "tomato and mozzarella"},
		{NameFR: "Quatre Fromages", NameEN: "Four Cheese", Price: "14dt", CategoryFR: "Pizzas", CategoryEN: "Pizzas", DescriptionEN: "four cheese pizza"},
		{NameFR: "Citronnade", NameEN: "Lemonade", Price: "5dt", CategoryFR: "Boissons", CategoryEN: "Drinks"},
		{NameFR: "Ciabatta Thon", NameEN: "Tuna Ciabatta", Price: "9dt", CategoryFR: "Sandwichs", CategoryEN: "Sandwiches", DescriptionEN: "tuna, olives"},
	}
}

func TestRetrieveRelevant_GenericTriggerReturnsUnfiltered(t *testing.T) {
	items := sampleCatalogue()

	// "what" is a generic trigger: broad-match shortcut, no filtering
	got := RetrieveRelevant(items, "what pizzas do you have?", 40)
	require.Equal(t, items, got)
}

func TestRetrieveRelevant_TriggerRespectsMaxResults(t *testing.T) {
	var items []domain.MenuItem
	for i := 0; i < 50; i++ {
		items = append(items, domain.MenuItem{
			NameFR: fmt.Sprintf("Plat %d", i),
			NameEN: fmt.Sprintf("Dish %d", i),
		})
	}
	got := RetrieveRelevant(items, "le menu enfant", 40)
	require.Len(t, got, 40)
	require.Equal(t, items[0], got[0])
}

func TestRetrieveRelevant_ScoresAndSorts(t *testing.T) {
	items := sampleCatalogue()

	got := RetrieveRelevant(items, "une pizza margherita", 40)
	require.NotEmpty(t, got)
	// "margherita" and "pizza" both hit the first item; it must rank first
	require.Equal(t, "Margherita", got[0].NameEN)
	for _, it := range got {
		require.NotEqual(t, "Lemonade", it.NameEN, "zero-score items are dropped")
	}
}

func TestRetrieveRelevant_PluralMatching(t *testing.T) {
	items := []domain.MenuItem{
		{NameFR: "Olive", NameEN: "Olive", DescriptionEN: "olives marinated"},
	}
	got := RetrieveRelevant(items, "avec olive", 40)
	require.Len(t, got, 1)
}

func TestRetrieveRelevant_TieBreaksByOriginalIndex(t *testing.T) {
	items := []domain.MenuItem{
		{NameFR: "Thon Grillé", NameEN: "Grilled Tuna"},
		{NameFR: "Salade Thon", NameEN: "Tuna Salad"},
	}
	got := RetrieveRelevant(items, "du thon", 40)
	require.Len(t, got, 2)
	require.Equal(t, "Grilled Tuna", got[0].NameEN)
	require.Equal(t, "Tuna Salad", got[1].NameEN)
}

func TestRetrieveRelevant_Pure(t *testing.T) {
	items := sampleCatalogue()
	first := RetrieveRelevant(items, "une pizza fromage", 40)
	second := RetrieveRelevant(items, "une pizza fromage", 40)
	require.Equal(t, first, second)
}

func TestRetrieveRelevant_EmptyInputs(t *testing.T) {
	require.Nil(t, RetrieveRelevant(nil, "pizza", 40))
	require.Nil(t, RetrieveRelevant(sampleCatalogue(), "", 40))
}

func TestRetrieveRelevant_NoMatchReturnsEmpty(t *testing.T) {
	got := RetrieveRelevant(sampleCatalogue(), "zzqqxx", 40)
	require.Empty(t, got)
}

func TestRetrieveRelevant_ShortTokensIgnored(t *testing.T) {
	got := RetrieveRelevant(sampleCatalogue(), "a b c", 40)
	require.Empty(t, got)
}
