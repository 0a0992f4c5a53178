package pdf

import (
	"strconv"
	"strings"

	"github.com/propintel/underwrite/api"
)

// DefaultFontFamily is a core PDF font, no embedding needed
const DefaultFontFamily = "Helvetica"

// Theme holds the Tailwind class strings for each styled element of a report
type Theme struct {
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Heading     string `json:"heading,omitempty" yaml:"heading,omitempty"`
	Header      string `json:"header,omitempty" yaml:"header,omitempty"`
	Cell        string `json:"cell,omitempty" yaml:"cell,omitempty"`
	Border      string `json:"border,omitempty" yaml:"border,omitempty"`
	Footer      string `json:"footer,omitempty" yaml:"footer,omitempty"`
	FooterMuted string `json:"footer_muted,omitempty" yaml:"footer_muted,omitempty"`
}

// DefaultTheme matches the navy-on-white look of the underwriting report
func DefaultTheme() Theme {
	return Theme{
		Title:       "text-2xl text-blue-900 underline text-center",
		Heading:     "text-base text-blue-900",
		Header:      "text-xs bg-blue-900 text-white font-bold",
		Cell:        "text-xs text-black",
		Border:      "border-black",
		Footer:      "text-[10px] text-blue-900 text-center",
		FooterMuted: "text-[9px] text-gray-500 text-center",
	}
}

// merge fills empty fields of t from d
func (t Theme) merge(d Theme) Theme {
	pick := func(a, b string) string {
		if a == "" {
			return b
		}
		return a
	}
	return Theme{
		Title:       pick(t.Title, d.Title),
		Heading:     pick(t.Heading, d.Heading),
		Header:      pick(t.Header, d.Header),
		Cell:        pick(t.Cell, d.Cell),
		Border:      pick(t.Border, d.Border),
		Footer:      pick(t.Footer, d.Footer),
		FooterMuted: pick(t.FooterMuted, d.FooterMuted),
	}
}

// ResolvedTheme is a Theme converted into drawing styles
type ResolvedTheme struct {
	Title       TextStyle
	Heading     TextStyle
	Header      TextStyle
	HeaderFill  ShapeStyle
	Cell        TextStyle
	CellBorder  ShapeStyle
	Footer      TextStyle
	FooterMuted TextStyle
}

// Resolve converts the class strings, empty fields fall back to DefaultTheme
func (t Theme) Resolve() ResolvedTheme {
	t = t.merge(DefaultTheme())
	s := NewStyleConverter()

	header := api.ResolveStyles(t.Header)
	border := api.ResolveStyles(t.Border)

	fill := ShapeStyle{Fill: true, FillColor: s.ConvertColor(header.Background, Black)}
	line := ShapeStyle{Stroke: true, LineColor: s.ConvertColor(border.Border, Black), LineWidth: 1}

	return ResolvedTheme{
		Title:       s.ConvertToTextStyle(api.ResolveStyles(t.Title)),
		Heading:     s.ConvertToTextStyle(api.ResolveStyles(t.Heading)),
		Header:      s.ConvertToTextStyle(header),
		HeaderFill:  fill,
		Cell:        s.ConvertToTextStyle(api.ResolveStyles(t.Cell)),
		CellBorder:  line,
		Footer:      s.ConvertToTextStyle(api.ResolveStyles(t.Footer)),
		FooterMuted: s.ConvertToTextStyle(api.ResolveStyles(t.FooterMuted)),
	}
}

// StyleConverter handles converting api.Class styles into drawing styles
type StyleConverter struct {
	Family string
}

func NewStyleConverter() *StyleConverter {
	return &StyleConverter{Family: DefaultFontFamily}
}

// ConvertToTextStyle converts api.Class to a text style. Font sizes are rem,
// 1rem = 16pt; the default is 12pt.
func (s *StyleConverter) ConvertToTextStyle(class api.Class) TextStyle {
	style := TextStyle{
		Family: s.Family,
		Size:   12,
		Align:  s.ConvertAlignment(class.Align),
		Color:  s.ConvertColor(class.Foreground, Black),
	}

	if class.Font != nil {
		if class.Font.Size > 0 {
			style.Size = class.Font.Size * 16
		}
		style.Bold = class.Font.Bold
		style.Italic = class.Font.Italic
		style.Underline = class.Font.Underline
	}
	return style
}

// ConvertColor converts api.Color, falling back to def when unset
func (s *StyleConverter) ConvertColor(color *api.Color, def RGB) RGB {
	if color == nil || color.IsEmpty() {
		return def
	}
	r, g, b := hexToRGB(color.Hex)
	return RGB{R: r, G: g, B: b}
}

// ConvertAlignment converts text alignment string to Align
func (s *StyleConverter) ConvertAlignment(align string) Align {
	switch strings.ToLower(align) {
	case "center":
		return AlignCenter
	case "right":
		return AlignRight
	default:
		return AlignLeft
	}
}

// hexToRGB converts hex color string to RGB values (0-255)
func hexToRGB(hex string) (r, g, b int) {
	hex = strings.TrimPrefix(hex, "#")

	channel := func(s string) int {
		if val, err := strconv.ParseInt(s, 16, 0); err == nil {
			return int(val)
		}
		return 0
	}

	switch len(hex) {
	case 6:
		return channel(hex[0:2]), channel(hex[2:4]), channel(hex[4:6])
	case 3:
		return channel(strings.Repeat(hex[0:1], 2)), channel(strings.Repeat(hex[1:2], 2)), channel(strings.Repeat(hex[2:3], 2))
	}
	return 0, 0, 0
}
