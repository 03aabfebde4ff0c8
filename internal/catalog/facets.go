package catalog

import (
	"sort"
	"strconv"
)

type FacetValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FacetSet describes what the filter sidebar can offer for a product list.
type FacetSet struct {
	Dimensions map[Dimension][]FacetValue `json:"dimensions"`
	MinPrice   float64                    `json:"minPrice"`
	MaxPrice   float64                    `json:"maxPrice"`
	Priced     int                        `json:"priced"`
}

func Facets(products []Product) FacetSet {
	counts := map[Dimension]map[string]int{}
	for _, d := range Dimensions {
		counts[d] = map[string]int{}
	}
	fs := FacetSet{Dimensions: map[Dimension][]FacetValue{}}

	for _, p := range products {
		counts[DimCores][strconv.Itoa(p.Cores)]++
		counts[DimRAM][strconv.Itoa(p.RAMGB)]++
		counts[DimStorage][p.StorageType]++
		if b := BrandClass(p); b != "" {
			counts[DimBrand][b]++
		}
		if c := CategoryClass(p); c != "" {
			counts[DimCategory][c]++
		}
		if p.HasPrice() {
			if fs.Priced == 0 || p.Price < fs.MinPrice {
				fs.MinPrice = p.Price
			}
			if p.Price > fs.MaxPrice {
				fs.MaxPrice = p.Price
			}
			fs.Priced++
		}
	}

	for d, m := range counts {
		values := make([]FacetValue, 0, len(m))
		for v, n := range m {
			values = append(values, FacetValue{Value: v, Count: n})
		}
		numeric := d == DimCores || d == DimRAM
		sort.Slice(values, func(i, j int) bool {
			if numeric {
				a, _ := strconv.Atoi(values[i].Value)
				b, _ := strconv.Atoi(values[j].Value)
				return a < b
			}
			return values[i].Value < values[j].Value
		})
		fs.Dimensions[d] = values
	}
	return fs
}
