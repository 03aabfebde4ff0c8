package catalog

type Tag string

const (
	TagCheapestIntel     Tag = "cheapest-intel"
	TagCheapestAMD       Tag = "cheapest-amd"
	TagBestValuePerCore  Tag = "best-value-per-core"
	TagCheapestLowSpace  Tag = "cheapest-low-space"
	TagCheapestHighSpace Tag = "cheapest-high-space"
	TagFallbackCheapest  Tag = "fallback-cheapest"
)

const maxDeals = 3

// Deal is one featured pick.
type Deal struct {
	Product     Product `json:"product"`
	Tag         Tag     `json:"tag"`
	SavePercent int     `json:"savePercent,omitempty"`
}

type classifier struct {
	tag   Tag
	match func(Product) bool
}

// rankPlan is the pair of classification predicates tried before the
// per-core candidate.
type rankPlan [2]classifier

var (
	dedicatedPlan = rankPlan{
		{TagCheapestIntel, func(p Product) bool { return BrandClass(p) == BrandIntel }},
		{TagCheapestAMD, func(p Product) bool { return BrandClass(p) == BrandAMD }},
	}
	vpsPlan = rankPlan{
		{TagCheapestLowSpace, func(p Product) bool { return CategoryClass(p) == CategoryLowSpace }},
		{TagCheapestHighSpace, func(p Product) bool { return CategoryClass(p) == CategoryHighSpace }},
	}
)

// RankTopDeals picks up to three featured products using the Intel / AMD /
// per-core heuristics.
func RankTopDeals(products []Product) []Deal {
	return rank(products, dedicatedPlan)
}

// RankTopDealsFor uses the low-space / high-space heuristics for VPS plans
// and the brand heuristics for dedicated servers.
func RankTopDealsFor(kind Kind, products []Product) []Deal {
	if kind == KindVPS {
		return rank(products, vpsPlan)
	}
	return rank(products, dedicatedPlan)
}

func rank(products []Product, plan rankPlan) []Deal {
	valid := make([]Product, 0, len(products))
	for _, p := range products {
		if p.HasPrice() {
			valid = append(valid, p)
		}
	}
	if len(valid) == 0 {
		return []Deal{}
	}

	deals := make([]Deal, 0, maxDeals)
	chosen := map[string]bool{}
	add := func(p Product, tag Tag) {
		if chosen[p.ID] {
			return
		}
		chosen[p.ID] = true
		deals = append(deals, Deal{Product: p, Tag: tag, SavePercent: p.SavePercent()})
	}

	for _, c := range plan {
		if p, ok := cheapest(valid, c.match); ok {
			add(p, c.tag)
		}
	}
	if p, ok := bestPerCore(valid); ok {
		add(p, TagBestValuePerCore)
	}

	if len(deals) < maxDeals {
		rest := make([]Product, 0, len(valid))
		for _, p := range valid {
			if !chosen[p.ID] {
				rest = append(rest, p)
			}
		}
		SortByPrice(rest)
		for _, p := range rest {
			if len(deals) >= maxDeals {
				break
			}
			add(p, TagFallbackCheapest)
		}
	}
	return deals
}

func cheapest(products []Product, match func(Product) bool) (Product, bool) {
	var best Product
	found := false
	for _, p := range products {
		if !match(p) {
			continue
		}
		if !found || lessByPrice(p, best) {
			best, found = p, true
		}
	}
	return best, found
}

func bestPerCore(products []Product) (Product, bool) {
	var best Product
	found := false
	for _, p := range products {
		if p.Cores <= 0 {
			continue
		}
		if !found {
			best, found = p, true
			continue
		}
		a, b := p.PricePerCore(), best.PricePerCore()
		if a < b || (a == b && lessByPrice(p, best)) {
			best = p
		}
	}
	return best, found
}
