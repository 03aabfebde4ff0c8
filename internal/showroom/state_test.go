package showroom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/catalog"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/testutil"
)

func servers() []catalog.Product {
	ded := testutil.WithKind(catalog.KindDedicated)
	return []catalog.Product{
		testutil.NewProduct("1", ded, testutil.WithPrice(50), testutil.WithCores(2), testutil.WithBrand("Intel")),
		testutil.NewProduct("2", ded, testutil.WithPrice(40), testutil.WithCores(4), testutil.WithBrand("AMD")),
		testutil.NewProduct("3", ded, testutil.WithPrice(30), testutil.WithCores(8), testutil.WithBrand("Intel")),
	}
}

func ids(ps []catalog.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func apply(t *testing.T, s State, cmds ...Command) State {
	t.Helper()
	for _, c := range cmds {
		var err error
		s, err = s.Apply(c)
		require.NoError(t, err, c.Action)
	}
	return s
}

func TestNew_SortsAndResets(t *testing.T) {
	s := New(catalog.KindDedicated, servers(), "")

	v := s.View()
	assert.Equal(t, []string{"3", "2", "1"}, ids(v.Items))
	assert.Equal(t, 0, v.Index)
	assert.Equal(t, "en", v.Lang)
	assert.False(t, v.RTL)
	assert.Equal(t, 3, v.Total)
	assert.Len(t, v.Featured, 3)
}

func TestApply_ToggleAndMaxPrice(t *testing.T) {
	s := apply(t, New(catalog.KindDedicated, servers(), "en"),
		Command{Action: ActionToggle, Dimension: "cores", Value: "4"},
		Command{Action: ActionMaxPrice, Value: "45"},
	)

	v := s.View()
	assert.Equal(t, []string{"2"}, ids(v.Items))
	assert.Equal(t, 2, v.ActiveFilters)
	assert.Equal(t, 3, v.Total)
	assert.Equal(t, 1, v.Matched)

	s = apply(t, s, Command{Action: ActionToggle, Dimension: "cores", Value: "4"})
	assert.Equal(t, []string{"3", "2"}, ids(s.Visible()))
}

func TestApply_ResetClearsFilters(t *testing.T) {
	s := apply(t, New(catalog.KindDedicated, servers(), "en"),
		Command{Action: ActionToggle, Dimension: "brand", Value: "amd"},
		Command{Action: ActionReset},
	)
	assert.Equal(t, 0, s.View().ActiveFilters)
	assert.Len(t, s.Visible(), 3)
}

func TestApply_ResetRewindsCarousel(t *testing.T) {
	s := apply(t, New(catalog.KindDedicated, servers(), "en"),
		Command{Action: ActionToggle, Dimension: "brand", Value: "intel"},
		Command{Action: ActionNext},
	)
	require.Equal(t, 1, s.Carousel().CurrentIndex())

	s = apply(t, s, Command{Action: ActionReset})
	assert.Equal(t, 0, s.Carousel().CurrentIndex())
	assert.Equal(t, 0.0, s.View().Offset)
	assert.Equal(t, 3, s.Carousel().Len())
}

func TestApply_CarouselWrapsAndKeepsIndexOnFilter(t *testing.T) {
	s := New(catalog.KindDedicated, servers(), "en")

	s = apply(t, s, Command{Action: ActionPrev})
	assert.Equal(t, 2, s.Carousel().CurrentIndex())
	assert.Equal(t, -780.0, s.View().Offset)

	s = apply(t, s, Command{Action: ActionNext})
	assert.Equal(t, 0, s.Carousel().CurrentIndex())

	s = apply(t, s, Command{Action: ActionNext}, Command{Action: ActionToggle, Dimension: "brand", Value: "intel"})
	// two Intel servers remain, index 1 is still valid
	assert.Equal(t, 1, s.Carousel().CurrentIndex())

	s = apply(t, s, Command{Action: ActionToggle, Dimension: "brand", Value: "amd"},
		Command{Action: ActionToggle, Dimension: "brand", Value: "intel"})
	assert.Equal(t, []string{"2"}, ids(s.Visible()))
	assert.Equal(t, 0, s.Carousel().CurrentIndex())
}

func TestApply_LanguageChangeResetsCarousel(t *testing.T) {
	s := apply(t, New(catalog.KindDedicated, servers(), "en"), Command{Action: ActionNext})

	s = apply(t, s, Command{Action: ActionLang, Value: "AR"})
	v := s.View()
	assert.Equal(t, "ar", v.Lang)
	assert.True(t, v.RTL)
	assert.Equal(t, 0, v.Index)

	s = apply(t, s, Command{Action: ActionNext})
	assert.Equal(t, 390.0, s.View().Offset)

	s = apply(t, s, Command{Action: ActionLang, Value: "fr"})
	assert.False(t, s.View().RTL)
	assert.Equal(t, 0, s.View().Index)
}

func TestReload_KeepsSelectionResetsCarousel(t *testing.T) {
	s := apply(t, New(catalog.KindDedicated, servers(), "en"),
		Command{Action: ActionToggle, Dimension: "brand", Value: "intel"},
		Command{Action: ActionNext},
	)

	fresh := append(servers(), testutil.NewProduct("4", testutil.WithKind(catalog.KindDedicated),
		testutil.WithPrice(20), testutil.WithProcessor("Xeon E3")))
	s = s.Reload(fresh)

	assert.Equal(t, []string{"4", "3", "1"}, ids(s.Visible()))
	assert.Equal(t, 0, s.Carousel().CurrentIndex())
	assert.Equal(t, 1, s.View().ActiveFilters)
}

func TestReload_EmptyList(t *testing.T) {
	s := New(catalog.KindVPS, nil, "en")
	s = apply(t, s, Command{Action: ActionNext}, Command{Action: ActionPrev})

	v := s.View()
	assert.Equal(t, catalog.EmptyIndex, v.Index)
	assert.NotNil(t, v.Items)
	assert.Empty(t, v.Items)
	assert.Empty(t, v.Featured)
}

func TestApply_Errors(t *testing.T) {
	s := New(catalog.KindVPS, nil, "en")

	_, err := s.Apply(Command{Action: "jump"})
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = s.Apply(Command{Action: ActionToggle, Dimension: "color", Value: "red"})
	assert.ErrorIs(t, err, ErrUnknownDimension)
}

func TestApply_DoesNotMutatePrevious(t *testing.T) {
	before := New(catalog.KindDedicated, servers(), "en")
	_ = apply(t, before, Command{Action: ActionToggle, Dimension: "cores", Value: "2"}, Command{Action: ActionNext})

	assert.Len(t, before.Visible(), 3)
	assert.Equal(t, 0, before.Selection().ActiveCount())
	assert.Equal(t, 0, before.Carousel().CurrentIndex())
}
