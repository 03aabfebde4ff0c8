package catalog

// EmptyIndex is the carousel index of an empty list.
const EmptyIndex = -1

// Carousel is a wraparound pointer over a list of cards. Every transition
// returns a new value.
type Carousel struct {
	index  int
	length int
	rtl    bool
	stride float64
}

func NewCarousel(length int) Carousel {
	return Carousel{stride: DefaultStride}.WithLength(length)
}

// WithStride sets the card width used by Offset.
func (c Carousel) WithStride(stride float64) Carousel {
	if stride > 0 {
		c.stride = stride
	}
	return c
}

func (c Carousel) Next() Carousel {
	if c.length == 0 {
		return c
	}
	c.index = (c.index + 1) % c.length
	return c
}

func (c Carousel) Prev() Carousel {
	if c.length == 0 {
		return c
	}
	c.index = (c.index - 1 + c.length) % c.length
	return c
}

func (c Carousel) Reset() Carousel {
	if c.length == 0 {
		c.index = EmptyIndex
		return c
	}
	c.index = 0
	return c
}

// WithLength is used when the list is reloaded; it always resets.
func (c Carousel) WithLength(n int) Carousel {
	if n < 0 {
		n = 0
	}
	c.length = n
	return c.Reset()
}

// Resize keeps the current card when it still exists, otherwise resets.
func (c Carousel) Resize(n int) Carousel {
	if n < 0 {
		n = 0
	}
	if n == c.length {
		return c
	}
	c.length = n
	if c.index < 0 || c.index >= n {
		return c.Reset()
	}
	return c
}

// WithRTL switches direction, resetting when it changes.
func (c Carousel) WithRTL(rtl bool) Carousel {
	if c.rtl == rtl {
		return c
	}
	c.rtl = rtl
	return c.Reset()
}

func (c Carousel) CurrentIndex() int {
	if c.length == 0 {
		return EmptyIndex
	}
	return c.index
}

func (c Carousel) Len() int      { return c.length }
func (c Carousel) RTL() bool     { return c.rtl }
func (c Carousel) IsEmpty() bool { return c.length == 0 }

// Offset is the translation applied to the card track: negative in
// left-to-right layouts, positive in right-to-left ones.
func (c Carousel) Offset() float64 {
	if c.length == 0 {
		return 0
	}
	stride := c.stride
	if stride <= 0 {
		stride = DefaultStride
	}
	off := float64(c.index) * stride
	if c.rtl || off == 0 {
		return off
	}
	return -off
}
