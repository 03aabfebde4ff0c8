package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/catalog"
)

func TestCarousel_Wraparound(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		c := catalog.NewCarousel(n)
		assert.Equal(t, 0, c.CurrentIndex())

		for i := 0; i < n; i++ {
			c = c.Next()
		}
		assert.Equal(t, 0, c.CurrentIndex(), "next %d times returns to start", n)

		assert.Equal(t, n-1, catalog.NewCarousel(n).Prev().CurrentIndex())
	}
}

func TestCarousel_NextPrev(t *testing.T) {
	c := catalog.NewCarousel(3).Next().Next()
	assert.Equal(t, 2, c.CurrentIndex())
	assert.Equal(t, 1, c.Prev().CurrentIndex())
	assert.Equal(t, 2, c.CurrentIndex(), "transitions return new values")
}

func TestCarousel_Empty(t *testing.T) {
	var zero catalog.Carousel
	c := catalog.NewCarousel(0)

	assert.NotPanics(t, func() {
		c = c.Next().Prev().Next()
		zero = zero.Prev()
	})
	assert.Equal(t, catalog.EmptyIndex, c.CurrentIndex())
	assert.Equal(t, catalog.EmptyIndex, zero.CurrentIndex())
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0.0, c.Offset())
}

func TestCarousel_ResetTriggers(t *testing.T) {
	c := catalog.NewCarousel(4).Next().Next()

	assert.Equal(t, 0, c.Reset().CurrentIndex())
	assert.Equal(t, 0, c.WithLength(4).CurrentIndex(), "reload resets even with same length")
	assert.Equal(t, 0, c.WithRTL(true).CurrentIndex())
	assert.Equal(t, 2, c.WithRTL(false).CurrentIndex(), "same direction keeps position")
	assert.Equal(t, catalog.EmptyIndex, c.WithLength(0).CurrentIndex())
}

func TestCarousel_Resize(t *testing.T) {
	c := catalog.NewCarousel(5).Next().Next()

	assert.Equal(t, 2, c.Resize(3).CurrentIndex())
	assert.Equal(t, 0, c.Resize(2).CurrentIndex())
	assert.Equal(t, catalog.EmptyIndex, c.Resize(0).CurrentIndex())
	assert.Equal(t, 0, c.Resize(0).Resize(4).CurrentIndex())
}

func TestCarousel_Offset(t *testing.T) {
	c := catalog.NewCarousel(4).Next().Next()
	assert.Equal(t, -780.0, c.Offset())

	rtl := catalog.NewCarousel(4).WithRTL(true).Next().Next()
	assert.Equal(t, 780.0, rtl.Offset())

	custom := catalog.NewCarousel(4).WithStride(360).Next()
	assert.Equal(t, -360.0, custom.Offset())

	assert.Equal(t, 0.0, catalog.NewCarousel(4).Offset())
}
