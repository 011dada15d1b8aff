package vocab

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/normkit/normalize-server/internal/domain"
)

// Matcher defaults, used when no vocabulary entry claims the field.
const (
	DefaultBrand    = "Generic"
	DefaultCategory = "Uncategorized"
	DefaultModel    = "Unknown"
)

// stopWords are fluff tokens stripped before model extraction.
var stopWords = regexp.MustCompile(`\b(original|new|used|phone|pro|max|ultra|plus|lite)\b`)

// nonModelChars matches everything model extraction discards (keeps hyphen and whitespace).
var nonModelChars = regexp.MustCompile(`[^a-z0-9\s-]`)

// Matcher normalizes raw product titles against an ordered vocabulary.
//
// Matching is case-insensitive and whole-word (token boundaries, never bare
// substrings). Each stage removes the matched alias text from a working copy of
// the title with a literal substring replace; that removal can merge the
// characters around a mid-word occurrence (removing "pro" inside "prodigy"
// after "pro" matched elsewhere). This is a known, accepted heuristic of the
// pipeline and deliberately not corrected here.
type Matcher struct {
	vocab *Vocabulary
}

// NewMatcher creates a matcher over the given vocabulary.
func NewMatcher(v *Vocabulary) *Matcher {
	return &Matcher{vocab: v}
}

// Normalize produces a structured record for a raw title. It is deterministic
// and side-effect-free; the same title and vocabulary always yield the same
// record.
func (m *Matcher) Normalize(title string) domain.NormalizedRecord {
	rec := domain.NormalizedRecord{
		Title:      title,
		Brand:      DefaultBrand,
		Model:      DefaultModel,
		Category:   DefaultCategory,
		Specs:      []string{},
		Attributes: []string{},
		Tags:       []string{},
	}

	remaining := strings.ToLower(norm.NFC.String(title))

	// 1. Brand: first brand with any matching alias wins, in definition order.
	for _, b := range m.vocab.Brands {
		for _, alias := range b.Aliases {
			alias = strings.ToLower(alias)
			if matchesWholeWord(remaining, alias) {
				rec.Brand = b.Canonical
				remaining = strings.ReplaceAll(remaining, alias, "")
				break
			}
		}
		if rec.Brand != DefaultBrand {
			break
		}
	}

	// 2. Category: same first-match policy, consuming the matched alias so
	// model extraction cannot re-claim it.
	for _, c := range m.vocab.Categories {
		for _, alias := range c.Aliases {
			alias = strings.ToLower(alias)
			if matchesWholeWord(remaining, alias) {
				rec.Category = c.Canonical
				remaining = strings.ReplaceAll(remaining, alias, "")
				break
			}
		}
		if rec.Category != DefaultCategory {
			break
		}
	}

	// 3. Specs: every matching spec across every group is collected.
	foundSpecs := make(map[string]struct{})
	for _, g := range m.vocab.SpecGroups {
		for _, s := range g.Specs {
			for _, alias := range s.Aliases {
				alias = strings.ToLower(alias)
				if matchesWholeWord(remaining, alias) {
					foundSpecs[s.Canonical] = struct{}{}
					remaining = strings.ReplaceAll(remaining, alias, "")
				}
			}
		}
	}
	rec.Specs = sortedKeys(foundSpecs)

	// 4. Attributes: same all-matches policy as specs.
	foundAttrs := make(map[string]struct{})
	for _, a := range m.vocab.Attributes {
		for _, alias := range a.Aliases {
			alias = strings.ToLower(alias)
			if matchesWholeWord(remaining, alias) {
				foundAttrs[a.Canonical] = struct{}{}
				remaining = strings.ReplaceAll(remaining, alias, "")
			}
		}
	}
	rec.Attributes = sortedKeys(foundAttrs)

	// 5. Model: strip punctuation and stop words, then the longest surviving
	// token (first occurrence wins ties) is the best model guess.
	cleaned := nonModelChars.ReplaceAllString(remaining, "")
	cleaned = stopWords.ReplaceAllString(cleaned, "")

	model := ""
	for _, part := range strings.Fields(cleaned) {
		part = strings.TrimSpace(part)
		if len(part) <= 1 {
			continue
		}
		if len(part) > len(model) {
			model = part
		}
	}
	if model != "" {
		rec.Model = strings.ToUpper(model)
	}

	// 6. Tags: specs ∪ attributes ∪ category (when categorized), sorted.
	tagSet := make(map[string]struct{})
	for _, s := range rec.Specs {
		tagSet[s] = struct{}{}
	}
	for _, a := range rec.Attributes {
		tagSet[a] = struct{}{}
	}
	if rec.Category != DefaultCategory {
		tagSet[rec.Category] = struct{}{}
	}
	rec.Tags = sortedKeys(tagSet)

	return rec
}

// matchesWholeWord reports whether needle occurs in text on word boundaries
// (the \b semantics of the original matching rules: a boundary sits between a
// word character [a-z0-9_] and anything else).
func matchesWholeWord(text, needle string) bool {
	if needle == "" {
		return false
	}
	for i := 0; i+len(needle) <= len(text); {
		j := strings.Index(text[i:], needle)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(needle)
		if boundaryAt(text, start, needle[0]) && boundaryAfter(text, end, needle[len(needle)-1]) {
			return true
		}
		i = start + 1
	}
	return false
}

func boundaryAt(text string, start int, first byte) bool {
	prevIsWord := start > 0 && isWordByte(text[start-1])
	return prevIsWord != isWordByte(first)
}

func boundaryAfter(text string, end int, last byte) bool {
	nextIsWord := end < len(text) && isWordByte(text[end])
	return nextIsWord != isWordByte(last)
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
