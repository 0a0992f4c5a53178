// Package api holds the output-independent styling primitives shared by the
// renderers: colors, fonts, padding and the Tailwind class resolver.
package api

// Color is a hex color such as "#1e3a8a". An empty Hex means "unset".
type Color struct {
	Hex string `json:"hex,omitempty" yaml:"hex,omitempty"`
}

func (c Color) IsEmpty() bool {
	return c.Hex == ""
}

// Font describes the font properties of a style. Size is in rem, 1rem = 16pt.
type Font struct {
	Bold      bool    `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic    bool    `json:"italic,omitempty" yaml:"italic,omitempty"`
	Underline bool    `json:"underline,omitempty" yaml:"underline,omitempty"`
	Size      float64 `json:"size,omitempty" yaml:"size,omitempty"`
}

// Padding in points
type Padding struct {
	Top    float64 `json:"top,omitempty" yaml:"top,omitempty"`
	Right  float64 `json:"right,omitempty" yaml:"right,omitempty"`
	Bottom float64 `json:"bottom,omitempty" yaml:"bottom,omitempty"`
	Left   float64 `json:"left,omitempty" yaml:"left,omitempty"`
}

// Uniform returns a padding with the same value on all sides
func Uniform(v float64) Padding {
	return Padding{Top: v, Right: v, Bottom: v, Left: v}
}

// Rectangle is a width/height pair in points
type Rectangle struct {
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty"`
}

// Class is a resolved style: the result of parsing a Tailwind class string.
type Class struct {
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	Foreground *Color `json:"foreground,omitempty" yaml:"foreground,omitempty"`
	Background *Color `json:"background,omitempty" yaml:"background,omitempty"`
	Border     *Color `json:"border,omitempty" yaml:"border,omitempty"`
	Font       *Font  `json:"font,omitempty" yaml:"font,omitempty"`
	// Align is one of left, center, right
	Align string `json:"align,omitempty" yaml:"align,omitempty"`
}
