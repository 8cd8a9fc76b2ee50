package dataset

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/szzz666/PalEasyBreeding/pkg/models"
)

// namespace scopes dataset ids generated with uuid.NewSHA1.
var namespace = uuid.MustParse("6f1c5c2e-8f0b-4f7e-9a43-5b2d7c1e0a11")

// Dataset is a parsed catalog plus override rules.
type Dataset struct {
	// ID is a content hash of the raw document.
	ID    string
	Pals  []models.Pal
	Rules []models.OverrideRule
}

// Read parses a dataset document from r.
func Read(r io.Reader) (*Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Parse(raw)
}

// Parse decodes {"pals": [...], "rules": [...]}. Keys follow the exported game
// data ("CombiRank", "chinese_name", "genderSpecific", ...) with snake_case
// aliases accepted for each field.
func Parse(raw []byte) (*Dataset, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("parse dataset: invalid JSON")
	}
	doc := gjson.ParseBytes(raw)
	ds := &Dataset{ID: uuid.NewSHA1(namespace, raw).String()}

	var parseErr error
	doc.Get("pals").ForEach(func(_, v gjson.Result) bool {
		p, err := parsePal(v)
		if err != nil {
			parseErr = fmt.Errorf("pal %d: %w", len(ds.Pals), err)
			return false
		}
		ds.Pals = append(ds.Pals, p)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	doc.Get("rules").ForEach(func(_, v gjson.Result) bool {
		r, err := parseRule(v)
		if err != nil {
			parseErr = fmt.Errorf("rule %d: %w", len(ds.Rules), err)
			return false
		}
		ds.Rules = append(ds.Rules, r)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return ds, nil
}

func parsePal(v gjson.Result) (models.Pal, error) {
	name := first(v, "name").String()
	if name == "" {
		return models.Pal{}, fmt.Errorf("missing name")
	}
	rank := first(v, "CombiRank", "combi_rank", "rank")
	if !rank.Exists() {
		return models.Pal{}, fmt.Errorf("%s: missing CombiRank", name)
	}
	display := first(v, "display_name", "chinese_name").String()
	if display == "" {
		display = name
	}
	return models.Pal{
		Name:          name,
		DisplayName:   display,
		CatalogNumber: first(v, "index", "catalog_number").String(),
		Rank:          int(rank.Int()),
		Priority:      int(first(v, "Priority", "priority").Int()),
		ImageRef:      first(v, "image_name", "image").String(),
	}, nil
}

func parseRule(v gjson.Result) (models.OverrideRule, error) {
	r := models.OverrideRule{
		Parent1:     v.Get("parent1").String(),
		Parent2:     v.Get("parent2").String(),
		Child:       v.Get("child").String(),
		SexSpecific: first(v, "genderSpecific", "sex_specific").Bool(),
	}
	if r.Parent1 == "" || r.Parent2 == "" || r.Child == "" {
		return r, fmt.Errorf("parent1, parent2 and child are required")
	}
	if r.SexSpecific {
		r.Parent1Sex = models.ParseSex(first(v, "parent1Gender", "parent1_sex").String())
		r.Parent2Sex = models.ParseSex(first(v, "parent2Gender", "parent2_sex").String())
	}
	return r, nil
}

// first returns the first of keys present on v.
func first(v gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if r := v.Get(k); r.Exists() {
			return r
		}
	}
	return gjson.Result{}
}
