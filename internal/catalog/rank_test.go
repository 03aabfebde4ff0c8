package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/catalog"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/testutil"
)

func dealIDs(deals []catalog.Deal) []string {
	out := make([]string, 0, len(deals))
	for _, d := range deals {
		out = append(out, d.Product.ID)
	}
	return out
}

func dealTags(deals []catalog.Deal) []catalog.Tag {
	out := make([]catalog.Tag, 0, len(deals))
	for _, d := range deals {
		out = append(out, d.Tag)
	}
	return out
}

func TestRankTopDeals_Example(t *testing.T) {
	deals := catalog.RankTopDeals(testutil.SampleDeals())

	require.Len(t, deals, 3)
	assert.Equal(t, []string{"3", "2", "1"}, dealIDs(deals))
	assert.Equal(t, []catalog.Tag{
		catalog.TagCheapestIntel,
		catalog.TagCheapestAMD,
		catalog.TagFallbackCheapest,
	}, dealTags(deals))
}

func TestRankTopDeals_Empty(t *testing.T) {
	deals := catalog.RankTopDeals(nil)
	require.NotNil(t, deals)
	assert.Empty(t, deals)
}

func TestRankTopDeals_NeverPicksUnpriced(t *testing.T) {
	products := []catalog.Product{
		testutil.NewProduct("1", testutil.Unpriced(), testutil.WithBrand("Intel"), testutil.WithCores(64)),
		testutil.NewProduct("2", testutil.WithPrice(90), testutil.WithBrand("AMD")),
		testutil.NewProduct("3", testutil.Unpriced(), testutil.WithBrand("AMD")),
	}

	deals := catalog.RankTopDeals(products)
	assert.Equal(t, []string{"2"}, dealIDs(deals), "bound is the number of priced items")
	assert.Equal(t, catalog.TagCheapestAMD, deals[0].Tag)
}

func TestRankTopDeals_AllUnpriced(t *testing.T) {
	products := []catalog.Product{
		testutil.NewProduct("1", testutil.Unpriced()),
		testutil.NewProduct("2", testutil.Unpriced()),
	}
	assert.Empty(t, catalog.RankTopDeals(products))
}

func TestRankTopDeals_BestValuePerCore(t *testing.T) {
	products := []catalog.Product{
		testutil.NewProduct("1", testutil.WithPrice(20), testutil.WithBrand("Intel"), testutil.WithCores(1)),
		testutil.NewProduct("2", testutil.WithPrice(25), testutil.WithBrand("AMD"), testutil.WithCores(1)),
		testutil.NewProduct("3", testutil.WithPrice(60), testutil.WithCores(12)),
		testutil.NewProduct("4", testutil.WithPrice(22), testutil.WithCores(1)),
	}

	deals := catalog.RankTopDeals(products)
	assert.Equal(t, []string{"1", "2", "3"}, dealIDs(deals))
	assert.Equal(t, catalog.TagBestValuePerCore, deals[2].Tag)
}

func TestRankTopDeals_TiesBreakByID(t *testing.T) {
	products := []catalog.Product{
		testutil.NewProduct("12", testutil.WithPrice(10), testutil.WithBrand("Intel")),
		testutil.NewProduct("3", testutil.WithPrice(10), testutil.WithBrand("Intel")),
		testutil.NewProduct("7", testutil.WithPrice(10), testutil.WithBrand("Intel")),
	}

	deals := catalog.RankTopDeals(products)
	assert.Equal(t, []string{"3", "7", "12"}, dealIDs(deals))
	assert.Equal(t, []catalog.Tag{
		catalog.TagCheapestIntel,
		catalog.TagFallbackCheapest,
		catalog.TagFallbackCheapest,
	}, dealTags(deals))
}

func TestRankTopDeals_Properties(t *testing.T) {
	catalogs := map[string][]catalog.Product{
		"sample": testutil.SampleDeals(),
		"mixed":  mixedCatalog(),
		"single": {testutil.NewProduct("1", testutil.WithPrice(5))},
		"reversed": {
			testutil.NewProduct("9", testutil.WithPrice(5), testutil.WithBrand("AMD")),
			testutil.NewProduct("8", testutil.WithPrice(5), testutil.WithBrand("Intel")),
			testutil.NewProduct("7", testutil.WithPrice(5)),
			testutil.NewProduct("6", testutil.WithPrice(5)),
		},
	}

	for name, products := range catalogs {
		t.Run(name, func(t *testing.T) {
			first := catalog.RankTopDeals(products)
			second := catalog.RankTopDeals(products)
			assert.Equal(t, first, second, "deterministic")

			seen := map[string]bool{}
			for _, d := range first {
				assert.False(t, seen[d.Product.ID], "duplicate id %s", d.Product.ID)
				seen[d.Product.ID] = true
				assert.True(t, d.Product.HasPrice())
			}

			priced := 0
			for _, p := range products {
				if p.HasPrice() {
					priced++
				}
			}
			assert.Len(t, first, min(3, priced))
		})
	}
}

func TestRankTopDealsFor_VPSUsesSpaceCategories(t *testing.T) {
	products := []catalog.Product{
		testutil.NewProduct("1", testutil.WithPrice(8), testutil.WithCategory("LowSpace"), testutil.WithCores(1)),
		testutil.NewProduct("2", testutil.WithPrice(6), testutil.WithCategory("LowSpace"), testutil.WithCores(1)),
		testutil.NewProduct("3", testutil.WithPrice(15), testutil.WithCategory("HighSpace"), testutil.WithCores(2)),
		testutil.NewProduct("4", testutil.WithPrice(24), testutil.WithCategory("HighSpace"), testutil.WithCores(8)),
	}

	deals := catalog.RankTopDealsFor(catalog.KindVPS, products)
	assert.Equal(t, []string{"2", "3", "4"}, dealIDs(deals))
	assert.Equal(t, []catalog.Tag{
		catalog.TagCheapestLowSpace,
		catalog.TagCheapestHighSpace,
		catalog.TagBestValuePerCore,
	}, dealTags(deals))
}

func TestRankTopDeals_CarriesSavePercent(t *testing.T) {
	products := []catalog.Product{
		testutil.NewProduct("1", testutil.WithPrice(30), testutil.WithOldPrice(40), testutil.WithBrand("Intel")),
	}
	deals := catalog.RankTopDeals(products)
	require.Len(t, deals, 1)
	assert.Equal(t, 25, deals[0].SavePercent)
}

func TestRankTopDealsFor_CategoryNotOverriddenByName(t *testing.T) {
	high := testutil.NewProduct("1", testutil.WithPrice(5), testutil.WithCategory("HighSpace"), testutil.WithCores(1))
	high.Name = "Follow Me"
	low := testutil.NewProduct("2", testutil.WithPrice(9), testutil.WithCategory("LowSpace"), testutil.WithCores(1))

	deals := catalog.RankTopDealsFor(catalog.KindVPS, []catalog.Product{high, low})
	require.Len(t, deals, 2)
	assert.Equal(t, "2", deals[0].Product.ID)
	assert.Equal(t, catalog.TagCheapestLowSpace, deals[0].Tag)
	assert.Equal(t, "1", deals[1].Product.ID)
	assert.Equal(t, catalog.TagCheapestHighSpace, deals[1].Tag)
}
