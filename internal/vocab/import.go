package vocab

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/normkit/normalize-server/internal/errors"
)

// ParseImport reads a vocabulary import document:
//
//	{
//	  "brands":     {"Apple": ["apple", "iphone"], ...},
//	  "categories": {"Smartphones": ["phone", "smartphone"], ...},
//	  "specs":      {"storage": {"256GB": ["256gb"]}, ...},
//	  "attributes": {"5G": ["5g"], ...}
//	}
//
// Document order is preserved: the order keys appear in the JSON is the order
// the matcher will try them. encoding/json maps would lose that, so the
// document is walked with a token decoder.
func ParseImport(r io.Reader) (*Vocabulary, error) {
	dec := json.NewDecoder(r)

	if err := expectDelim(dec, '{'); err != nil {
		return nil, errors.Validation("vocabulary document must be a JSON object").WithCause(err)
	}

	v := &Vocabulary{}
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return nil, err
		}

		switch key {
		case "brands":
			v.Brands, err = parseValueAliases(dec, key)
		case "categories":
			v.Categories, err = parseValueAliases(dec, key)
		case "attributes":
			v.Attributes, err = parseValueAliases(dec, key)
		case "specs":
			v.SpecGroups, err = parseSpecGroups(dec)
		default:
			return nil, errors.Validationf("unknown vocabulary section %q", key)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, errors.Validation("malformed vocabulary document").WithCause(err)
	}

	if err := v.validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// validate enforces the vocabulary invariants: non-empty canonical values and
// aliases unique within (category, spec_group).
func (v *Vocabulary) validate() error {
	check := func(section, group string, list []ValueAliases) error {
		seen := make(map[string]string)
		for _, va := range list {
			if strings.TrimSpace(va.Canonical) == "" {
				return errors.Validationf("%s: canonical value cannot be empty", section)
			}
			for _, alias := range va.Aliases {
				alias = strings.ToLower(strings.TrimSpace(alias))
				if alias == "" {
					return errors.Validationf("%s: %q has an empty alias", section, va.Canonical)
				}
				key := group + "\x00" + alias
				if prev, dup := seen[key]; dup {
					return errors.Validationf("%s: alias %q maps to both %q and %q", section, alias, prev, va.Canonical)
				}
				seen[key] = va.Canonical
			}
		}
		return nil
	}

	if err := check("brands", "", v.Brands); err != nil {
		return err
	}
	if err := check("categories", "", v.Categories); err != nil {
		return err
	}
	if err := check("attributes", "", v.Attributes); err != nil {
		return err
	}
	for _, g := range v.SpecGroups {
		if err := check("specs."+g.Name, g.Name, g.Specs); err != nil {
			return err
		}
	}
	return nil
}

// parseValueAliases reads an object of canonical → [aliases] preserving order.
func parseValueAliases(dec *json.Decoder, section string) ([]ValueAliases, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, errors.Validationf("%s must be an object", section)
	}

	var list []ValueAliases
	for dec.More() {
		canonical, err := stringToken(dec)
		if err != nil {
			return nil, err
		}
		aliases, err := parseStringArray(dec)
		if err != nil {
			return nil, errors.Validationf("%s.%s: %v", section, canonical, err)
		}
		list = append(list, ValueAliases{Canonical: canonical, Aliases: aliases})
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return list, nil
}

// parseSpecGroups reads the specs section: group → spec → [aliases].
func parseSpecGroups(dec *json.Decoder) ([]SpecGroup, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, errors.Validation("specs must be an object")
	}

	var groups []SpecGroup
	for dec.More() {
		name, err := stringToken(dec)
		if err != nil {
			return nil, err
		}
		specs, err := parseValueAliases(dec, "specs."+name)
		if err != nil {
			return nil, err
		}
		groups = append(groups, SpecGroup{Name: name, Specs: specs})
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return groups, nil
}

func parseStringArray(dec *json.Decoder) ([]string, error) {
	if err := expectDelim(dec, '['); err != nil {
		return nil, fmt.Errorf("expected an array of aliases")
	}

	var out []string
	for dec.More() {
		s, err := stringToken(dec)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	return out, nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", errors.Validation("malformed vocabulary document").WithCause(err)
	}
	s, ok := tok.(string)
	if !ok {
		return "", errors.Validationf("expected string, got %v", tok)
	}
	return s, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
