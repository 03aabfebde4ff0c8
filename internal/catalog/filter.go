package catalog

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

type Dimension string

const (
	DimCores    Dimension = "cores"
	DimRAM      Dimension = "ram"
	DimStorage  Dimension = "storage"
	DimBrand    Dimension = "brand"
	DimCategory Dimension = "category"
)

// Dimensions lists every facet dimension in display order.
var Dimensions = []Dimension{DimCores, DimRAM, DimStorage, DimBrand, DimCategory}

func ParseDimension(s string) (Dimension, bool) {
	d := Dimension(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Dimensions {
		if d == known {
			return d, true
		}
	}
	return "", false
}

// Keyword classes for the brand and category dimensions.
const (
	BrandIntel = "intel"
	BrandAMD   = "amd"

	CategoryLowSpace  = "low"
	CategoryHighSpace = "high"
)

var brandKeywords = map[string][]string{
	BrandIntel: {"intel", "xeon", "core i"},
	BrandAMD:   {"amd", "ryzen", "epyc", "threadripper", "opteron"},
}

var categoryKeywords = map[string][]string{
	CategoryLowSpace:  {"low"},
	CategoryHighSpace: {"high"},
}

// Selection is an immutable filter selection. The zero value selects everything.
type Selection struct {
	sets     map[Dimension][]string
	maxPrice float64
}

// Toggle adds value to the dimension's set, or removes it when already present.
func (s Selection) Toggle(dim Dimension, value string) Selection {
	value = normalizeFacetValue(dim, value)
	if value == "" {
		return s
	}
	next := s.clone()
	current := next.sets[dim]
	idx := indexOf(current, value)
	if idx >= 0 {
		updated := make([]string, 0, len(current)-1)
		updated = append(updated, current[:idx]...)
		updated = append(updated, current[idx+1:]...)
		current = updated
	} else {
		current = append(append([]string(nil), current...), value)
		sort.Strings(current)
	}
	if len(current) == 0 {
		delete(next.sets, dim)
	} else {
		next.sets[dim] = current
	}
	return next
}

// WithMaxPrice sets the price bound. Values <= 0 clear it.
func (s Selection) WithMaxPrice(v float64) Selection {
	next := s.clone()
	if v < 0 {
		v = 0
	}
	next.maxPrice = v
	return next
}

// Reset clears every constraint.
func (s Selection) Reset() Selection {
	return Selection{}
}

func (s Selection) Values(dim Dimension) []string {
	return append([]string(nil), s.sets[dim]...)
}

func (s Selection) Has(dim Dimension, value string) bool {
	return indexOf(s.sets[dim], normalizeFacetValue(dim, value)) >= 0
}

// MaxPrice returns the bound and whether it is active.
func (s Selection) MaxPrice() (float64, bool) {
	return s.maxPrice, s.maxPrice > 0
}

// ActiveCount is the number of constrained dimensions, max price included.
func (s Selection) ActiveCount() int {
	n := 0
	for _, d := range Dimensions {
		if len(s.sets[d]) > 0 {
			n++
		}
	}
	if s.maxPrice > 0 {
		n++
	}
	return n
}

func (s Selection) IsEmpty() bool {
	return s.ActiveCount() == 0
}

// Map renders the selection for JSON responses.
func (s Selection) Map() map[string]any {
	out := map[string]any{}
	for _, d := range Dimensions {
		if vals := s.sets[d]; len(vals) > 0 {
			out[string(d)] = append([]string(nil), vals...)
		}
	}
	if s.maxPrice > 0 {
		out["maxPrice"] = s.maxPrice
	}
	return out
}

func (s Selection) clone() Selection {
	next := Selection{sets: make(map[Dimension][]string, len(s.sets)), maxPrice: s.maxPrice}
	for d, vals := range s.sets {
		next.sets[d] = vals
	}
	return next
}

// ParseSelection reads a selection from query values. Each dimension accepts
// repeated keys and comma separated lists; maxPrice is a number.
func ParseSelection(q url.Values) Selection {
	sel := Selection{}
	for _, d := range Dimensions {
		for _, raw := range q[string(d)] {
			for _, v := range strings.Split(raw, ",") {
				if v = strings.TrimSpace(v); v != "" && !sel.Has(d, v) {
					sel = sel.Toggle(d, v)
				}
			}
		}
	}
	if raw := q.Get("maxPrice"); raw != "" {
		if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			sel = sel.WithMaxPrice(v)
		}
	}
	return sel
}

// ApplyFilters returns the products matching every active constraint,
// sorted by price ascending. The input slice is left untouched.
func ApplyFilters(products []Product, sel Selection) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if sel.Matches(p) {
			out = append(out, p)
		}
	}
	SortByPrice(out)
	return out
}

// SortByPrice sorts in place by price, then id.
func SortByPrice(products []Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return lessByPrice(products[i], products[j])
	})
}

// Matches reports whether p satisfies every active constraint.
func (s Selection) Matches(p Product) bool {
	for _, d := range Dimensions {
		set := s.sets[d]
		if len(set) == 0 {
			continue
		}
		if !matchesDimension(p, d, set) {
			return false
		}
	}
	if s.maxPrice > 0 && p.Price > s.maxPrice {
		return false
	}
	return true
}

func matchesDimension(p Product, d Dimension, set []string) bool {
	for _, want := range set {
		switch d {
		case DimCores:
			if strconv.Itoa(p.Cores) == want {
				return true
			}
		case DimRAM:
			if strconv.Itoa(p.RAMGB) == want {
				return true
			}
		case DimStorage:
			if strings.EqualFold(p.StorageType, want) {
				return true
			}
		case DimBrand:
			if matchesClass(BrandClass(p), brandText(p), want, brandKeywords) {
				return true
			}
		case DimCategory:
			if matchesClass(CategoryClass(p), categoryText(p), want, categoryKeywords) {
				return true
			}
		}
	}
	return false
}

// matchesKeywordClass checks text against the keyword list of a known class,
// or falls back to a plain substring match for unknown values.
func matchesKeywordClass(text, want string, classes map[string][]string) bool {
	if keywords, ok := classes[want]; ok {
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				return true
			}
		}
		return false
	}
	return strings.Contains(text, want)
}

// matchesClass compares a known class against the product's resolved class;
// unknown values fall back to a substring match over the product text.
func matchesClass(class, text, want string, classes map[string][]string) bool {
	if _, known := classes[want]; known {
		return class == want
	}
	return matchesKeywordClass(text, want, classes)
}

func brandText(p Product) string {
	return strings.ToLower(p.Brand + " " + p.Processor + " " + p.Name)
}

func categoryText(p Product) string {
	return strings.ToLower(p.Category + " " + p.Name)
}

// classify returns the first class matched by the earliest source that
// matches any class at all. Explicit fields come before the free-text name.
func classify(order []string, classes map[string][]string, sources ...string) string {
	for _, src := range sources {
		text := strings.ToLower(src)
		if strings.TrimSpace(text) == "" {
			continue
		}
		for _, class := range order {
			if matchesKeywordClass(text, class, classes) {
				return class
			}
		}
	}
	return ""
}

// BrandClass returns "intel", "amd" or "" for a product. Brand wins over
// processor, and both win over the name.
func BrandClass(p Product) string {
	return classify([]string{BrandIntel, BrandAMD}, brandKeywords, p.Brand, p.Processor, p.Name)
}

// CategoryClass returns "low", "high" or "" for a product. The name is only
// consulted when the category itself is unclassified.
func CategoryClass(p Product) string {
	return classify([]string{CategoryLowSpace, CategoryHighSpace}, categoryKeywords, p.Category, p.Name)
}

func normalizeFacetValue(d Dimension, v string) string {
	v = strings.TrimSpace(v)
	switch d {
	case DimCores, DimRAM:
		if n := asInt(v); n > 0 {
			return strconv.Itoa(n)
		}
		return ""
	case DimStorage:
		return canonicalStorageType(v)
	case DimBrand, DimCategory:
		v = strings.ToLower(v)
		v = strings.TrimSuffix(strings.TrimSuffix(v, "space"), " ")
		return v
	}
	return v
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
