package vocab

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/normkit/normalize-server/internal/domain"
	"github.com/normkit/normalize-server/internal/errors"
)

const importDoc = `{
  "brands": {
    "Apple":   ["apple", "iphone"],
    "Samsung": ["samsung", "galaxy"]
  },
  "categories": {
    "Smartphones": ["phone", "smartphone"]
  },
  "specs": {
    "storage": {
      "256GB": ["256gb"],
      "128GB": ["128gb"]
    }
  },
  "attributes": {
    "5G": ["5g"]
  }
}`

func TestParseImport_PreservesDocumentOrder(t *testing.T) {
	v, err := ParseImport(strings.NewReader(importDoc))
	require.NoError(t, err)

	require.Len(t, v.Brands, 2)
	assert.Equal(t, "Apple", v.Brands[0].Canonical)
	assert.Equal(t, []string{"apple", "iphone"}, v.Brands[0].Aliases)
	assert.Equal(t, "Samsung", v.Brands[1].Canonical)

	require.Len(t, v.SpecGroups, 1)
	assert.Equal(t, "storage", v.SpecGroups[0].Name)
	require.Len(t, v.SpecGroups[0].Specs, 2)
	assert.Equal(t, "256GB", v.SpecGroups[0].Specs[0].Canonical)
	assert.Equal(t, "128GB", v.SpecGroups[0].Specs[1].Canonical)
}

func TestParseImport_UnknownSection(t *testing.T) {
	_, err := ParseImport(strings.NewReader(`{"colors": {"Red": ["red"]}}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestParseImport_DuplicateAliasRejected(t *testing.T) {
	doc := `{"brands": {"Apple": ["apple"], "Pear": ["apple"]}}`
	_, err := ParseImport(strings.NewReader(doc))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
	assert.Contains(t, err.Error(), "apple")
}

func TestParseImport_DuplicateAliasAllowedAcrossSpecGroups(t *testing.T) {
	doc := `{"specs": {
	  "storage":     {"64GB": ["64"]},
	  "screen_size": {"6.4 inch": ["64"]}
	}}`
	_, err := ParseImport(strings.NewReader(doc))
	require.NoError(t, err)
}

func TestParseImport_EmptyCanonicalRejected(t *testing.T) {
	_, err := ParseImport(strings.NewReader(`{"brands": {"  ": ["x"]}}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestParseImport_Malformed(t *testing.T) {
	for _, doc := range []string{
		``,
		`[]`,
		`{"brands": ["apple"]}`,
		`{"brands": {"Apple": "apple"}}`,
		`{"brands": {"Apple": ["apple"]}`,
	} {
		_, err := ParseImport(strings.NewReader(doc))
		assert.Error(t, err, "document %q", doc)
	}
}

func TestEntriesRoundTrip(t *testing.T) {
	v, err := ParseImport(strings.NewReader(importDoc))
	require.NoError(t, err)

	entries := v.Entries()
	require.NotEmpty(t, entries)
	for i, e := range entries {
		assert.Equal(t, i, e.Position)
	}

	rebuilt, err := FromEntries(entries)
	require.NoError(t, err)
	assert.Equal(t, v, rebuilt)
}

func TestFromEntries_SkipsColorEntries(t *testing.T) {
	entries := []domain.VocabularyEntry{
		{Category: domain.CategoryBrand, CanonicalValue: "Apple", Alias: "apple", Position: 0},
		{Category: domain.CategoryColor, CanonicalValue: "Midnight", Alias: "midnite", Position: 1},
	}

	v, err := FromEntries(entries)
	require.NoError(t, err)
	require.Len(t, v.Brands, 1)
	assert.Empty(t, v.Categories)
}
