package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVocabulary() *Vocabulary {
	return &Vocabulary{
		Brands: []ValueAliases{
			{Canonical: "Apple", Aliases: []string{"apple", "iphone"}},
			{Canonical: "Samsung", Aliases: []string{"samsung", "galaxy"}},
		},
		Categories: []ValueAliases{
			{Canonical: "Smartphones", Aliases: []string{"iphone", "phone", "smartphone"}},
			{Canonical: "Tablets", Aliases: []string{"tablet", "ipad"}},
		},
		SpecGroups: []SpecGroup{
			{Name: "storage", Specs: []ValueAliases{
				{Canonical: "256GB", Aliases: []string{"256gb"}},
				{Canonical: "128GB", Aliases: []string{"128gb"}},
			}},
			{Name: "screen_size", Specs: []ValueAliases{
				{Canonical: "6.1 inch", Aliases: []string{"6.1in"}},
			}},
		},
		Attributes: []ValueAliases{
			{Canonical: "5G", Aliases: []string{"5g"}},
			{Canonical: "Pro", Aliases: []string{"pro edition"}},
		},
	}
}

func TestNormalize_StructuredRecord(t *testing.T) {
	m := NewMatcher(testVocabulary())

	rec := m.Normalize("Apple iPhone 14 Pro 256GB Space Gray")

	assert.Equal(t, "Apple", rec.Brand)
	assert.Equal(t, "Smartphones", rec.Category)
	assert.Equal(t, []string{"256GB"}, rec.Specs)
	assert.Equal(t, "SPACE", rec.Model)
	assert.Equal(t, []string{"256GB", "Smartphones"}, rec.Tags)
}

func TestNormalize_Defaults(t *testing.T) {
	m := NewMatcher(testVocabulary())

	rec := m.Normalize("???")

	assert.Equal(t, DefaultBrand, rec.Brand)
	assert.Equal(t, DefaultCategory, rec.Category)
	assert.Equal(t, DefaultModel, rec.Model)
	assert.NotNil(t, rec.Specs)
	assert.Empty(t, rec.Specs)
	assert.NotNil(t, rec.Attributes)
	assert.Empty(t, rec.Attributes)
	assert.NotNil(t, rec.Tags)
	assert.Empty(t, rec.Tags)
}

func TestNormalize_WholeWordOnly(t *testing.T) {
	m := NewMatcher(&Vocabulary{
		Brands: []ValueAliases{{Canonical: "ProCo", Aliases: []string{"pro"}}},
	})

	// "prodigy" contains "pro" but not on a word boundary.
	rec := m.Normalize("Prodigy gaming mouse")
	assert.Equal(t, DefaultBrand, rec.Brand)

	rec = m.Normalize("Pro gaming mouse")
	assert.Equal(t, "ProCo", rec.Brand)
}

func TestNormalize_BrandDefinitionOrderWins(t *testing.T) {
	m := NewMatcher(&Vocabulary{
		Brands: []ValueAliases{
			{Canonical: "First", Aliases: []string{"acme"}},
			{Canonical: "Second", Aliases: []string{"acme"}},
		},
	})

	rec := m.Normalize("acme widget")
	assert.Equal(t, "First", rec.Brand)
}

func TestNormalize_SpecsCollectAcrossGroups(t *testing.T) {
	m := NewMatcher(testVocabulary())

	rec := m.Normalize("samsung galaxy phone 128gb 6.1in 5g")

	assert.Equal(t, []string{"128GB", "6.1 inch"}, rec.Specs)
	assert.Equal(t, []string{"5G"}, rec.Attributes)
	assert.Equal(t, []string{"128GB", "5G", "6.1 inch", "Smartphones"}, rec.Tags)
}

func TestNormalize_ModelExtraction(t *testing.T) {
	m := NewMatcher(testVocabulary())

	tests := []struct {
		name  string
		title string
		model string
	}{
		{"longest token wins", "apple phone zz veryverylong ab", "VERYVERYLONG"},
		{"first occurrence breaks ties", "apple phone abcde fghij", "ABCDE"},
		{"stop words ignored", "apple phone original ultra x9", "X9"},
		{"single chars ignored", "apple phone a b c", "Unknown"},
		{"hyphen survives", "apple phone mk-ii", "MK-II"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := m.Normalize(tt.title)
			assert.Equal(t, tt.model, rec.Model)
		})
	}
}

// Removal is a literal substring replace, so a whole-word match elsewhere in
// the title also strips mid-word occurrences of the same alias. That behavior
// is intentional; this test pins it so a change is a conscious one.
func TestNormalize_RemovalIsLiteralSubstringReplace(t *testing.T) {
	m := NewMatcher(&Vocabulary{
		Brands: []ValueAliases{{Canonical: "ProCo", Aliases: []string{"pro"}}},
	})

	rec := m.Normalize("pro prodigy controller")

	require.Equal(t, "ProCo", rec.Brand)
	// "pro" was removed from "prodigy" too, leaving "digy".
	assert.Equal(t, "CONTROLLER", rec.Model)
}

func TestNormalize_CaseInsensitive(t *testing.T) {
	m := NewMatcher(testVocabulary())

	rec := m.Normalize("SAMSUNG Galaxy TABLET 128GB")

	assert.Equal(t, "Samsung", rec.Brand)
	assert.Equal(t, "Tablets", rec.Category)
	assert.Equal(t, []string{"128GB"}, rec.Specs)
}

func TestNormalize_Deterministic(t *testing.T) {
	m := NewMatcher(testVocabulary())

	first := m.Normalize("Apple iPhone 14 Pro 256GB Space Gray")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, m.Normalize("Apple iPhone 14 Pro 256GB Space Gray"))
	}
}
