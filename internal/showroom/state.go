// Package showroom holds the per-connection browse state of the storefront:
// a product list, the active filter selection and the card carousel.
//
// State is immutable. Apply and Reload return a new State; the websocket
// session owns the only mutable reference.
package showroom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/catalog"
)

const (
	ActionToggle    = "toggle"
	ActionMaxPrice  = "max_price"
	ActionReset     = "reset"
	ActionNext      = "next"
	ActionPrev      = "prev"
	ActionLang      = "lang"
	ActionDirection = "direction"
	ActionReload    = "reload"
)

var (
	ErrUnknownAction    = errors.New("unknown action")
	ErrUnknownDimension = errors.New("unknown filter dimension")
)

// Command is one client message.
type Command struct {
	Action    string `json:"action"`
	Dimension string `json:"dimension,omitempty"`
	Value     string `json:"value,omitempty"`
}

type State struct {
	kind      catalog.Kind
	lang      string
	base      []catalog.Product
	visible   []catalog.Product
	selection catalog.Selection
	carousel  catalog.Carousel
}

// New starts a session over products. Languages written right to left flip
// the carousel direction.
func New(kind catalog.Kind, products []catalog.Product, lang string) State {
	lang = normalizeLang(lang)
	s := State{
		kind:     kind,
		lang:     lang,
		carousel: catalog.NewCarousel(0).WithRTL(isRTL(lang)),
	}
	return s.Reload(products)
}

// Reload swaps in a freshly loaded list. The selection survives; the
// carousel starts over.
func (s State) Reload(products []catalog.Product) State {
	s.base = products
	s.visible = catalog.ApplyFilters(products, s.selection)
	s.carousel = s.carousel.WithLength(len(s.visible))
	return s
}

func (s State) Kind() catalog.Kind           { return s.kind }
func (s State) Lang() string                 { return s.lang }
func (s State) Selection() catalog.Selection { return s.selection }
func (s State) Carousel() catalog.Carousel   { return s.carousel }
func (s State) Visible() []catalog.Product   { return s.visible }
func (s State) Products() []catalog.Product  { return s.base }

func (s State) withSelection(sel catalog.Selection) State {
	s.selection = sel
	s.visible = catalog.ApplyFilters(s.base, sel)
	s.carousel = s.carousel.Resize(len(s.visible))
	return s
}

// Apply runs cmd. Reload is answered by the caller with a fresh list, so
// here it only validates. On error the state is returned unchanged.
func (s State) Apply(cmd Command) (State, error) {
	switch strings.ToLower(strings.TrimSpace(cmd.Action)) {
	case ActionToggle:
		dim, ok := catalog.ParseDimension(cmd.Dimension)
		if !ok {
			return s, fmt.Errorf("%w: %q", ErrUnknownDimension, cmd.Dimension)
		}
		if strings.TrimSpace(cmd.Value) == "" {
			return s, nil
		}
		return s.withSelection(s.selection.Toggle(dim, cmd.Value)), nil

	case ActionMaxPrice:
		v, err := strconv.ParseFloat(strings.TrimSpace(cmd.Value), 64)
		if err != nil {
			v = 0
		}
		return s.withSelection(s.selection.WithMaxPrice(v)), nil

	case ActionReset:
		s = s.withSelection(s.selection.Reset())
		s.carousel = s.carousel.Reset()
		return s, nil

	case ActionNext:
		s.carousel = s.carousel.Next()
		return s, nil

	case ActionPrev:
		s.carousel = s.carousel.Prev()
		return s, nil

	case ActionLang:
		lang := normalizeLang(cmd.Value)
		if lang == s.lang {
			return s, nil
		}
		s.lang = lang
		s.carousel = s.carousel.WithRTL(isRTL(lang)).Reset()
		return s, nil

	case ActionDirection:
		s.carousel = s.carousel.WithRTL(strings.EqualFold(cmd.Value, "rtl"))
		return s, nil

	case ActionReload:
		return s, nil
	}
	return s, fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action)
}

// View is what the client renders.
type View struct {
	Kind          catalog.Kind      `json:"kind"`
	Lang          string            `json:"lang"`
	Items         []catalog.Product `json:"items"`
	Total         int               `json:"total"`
	Matched       int               `json:"matched"`
	Filters       map[string]any    `json:"filters"`
	ActiveFilters int               `json:"activeFilters"`
	Index         int               `json:"index"`
	Offset        float64           `json:"offset"`
	RTL           bool              `json:"rtl"`
	Featured      []catalog.Deal    `json:"featured"`
	Facets        catalog.FacetSet  `json:"facets"`
}

func (s State) View() View {
	items := s.visible
	if items == nil {
		items = []catalog.Product{}
	}
	return View{
		Kind:          s.kind,
		Lang:          s.lang,
		Items:         items,
		Total:         len(s.base),
		Matched:       len(s.visible),
		Filters:       s.selection.Map(),
		ActiveFilters: s.selection.ActiveCount(),
		Index:         s.carousel.CurrentIndex(),
		Offset:        s.carousel.Offset(),
		RTL:           s.carousel.RTL(),
		Featured:      catalog.RankTopDealsFor(s.kind, s.base),
		Facets:        catalog.Facets(s.base),
	}
}

func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return "en"
	}
	return lang
}

func isRTL(lang string) bool {
	switch lang {
	case "ar", "he", "fa", "ur":
		return true
	}
	return false
}
