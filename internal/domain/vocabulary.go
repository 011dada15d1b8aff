package domain

// Category identifies which vocabulary table an entry belongs to.
type Category string

const (
	CategoryBrand     Category = "brand"
	CategoryCategory  Category = "category"
	CategorySpec      Category = "spec"
	CategoryAttribute Category = "attribute"
	CategoryColor     Category = "color"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryBrand, CategoryCategory, CategorySpec, CategoryAttribute, CategoryColor:
		return true
	}
	return false
}

// VocabularyEntry maps one surface alias to a canonical value.
//
// Position records the definition order from the import document; the matcher's
// first-match tie-breaking iterates entries in Position order, so ordering is a
// contract rather than an artifact of map iteration.
type VocabularyEntry struct {
	ID             int64    `json:"id"`
	Category       Category `json:"category"`
	SpecGroup      string   `json:"spec_group,omitempty"` // only set for CategorySpec
	CanonicalValue string   `json:"canonical_value"`
	Alias          string   `json:"alias"`
	Position       int      `json:"position"`
}

// NormalizedRecord is the matcher's structured output for one title.
// Produced fresh per invocation and never persisted.
type NormalizedRecord struct {
	Title      string   `json:"title"`
	Brand      string   `json:"brand"`
	Model      string   `json:"model"`
	Category   string   `json:"category"`
	Specs      []string `json:"specs"`
	Attributes []string `json:"attributes"`
	Tags       []string `json:"tags"`
}
