package domain

import "strings"

// MenuItem is one flattened catalogue entry with bilingual fields. Items are
// rebuilt from the static menu document on every cold start and never mutated
// after load.
type MenuItem struct {
	NameFR        string `json:"name_fr"`
	NameEN        string `json:"name_en"`
	Price         string `json:"price"`
	DescriptionFR string `json:"description_fr"`
	DescriptionEN string `json:"description_en"`
	TypeFR        string `json:"type_fr"`
	TypeEN        string `json:"type_en"`
	CategoryFR    string `json:"category_fr"`
	CategoryEN    string `json:"category_en"`
	DetailsFR     string `json:"details_fr"`
	DetailsEN     string `json:"details_en"`
}

// DedupKey is the composite identity used to collapse duplicate entries
// encountered while walking the nested menu document.
func (it MenuItem) DedupKey() string {
	return strings.ToLower(it.NameFR) + "|" + strings.ToLower(it.NameEN) + "|" + it.Price
}

// SearchText concatenates every bilingual text field for keyword scoring.
func (it MenuItem) SearchText() string {
	return strings.ToLower(strings.Join([]string{
		it.NameFR, it.NameEN,
		it.DescriptionFR, it.DescriptionEN,
		it.DetailsFR, it.DetailsEN,
		it.CategoryFR, it.CategoryEN,
		it.TypeFR, it.TypeEN,
	}, " "))
}
