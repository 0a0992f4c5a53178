package api

import (
	"strconv"
	"strings"

	"github.com/propintel/underwrite/api/tailwind"
)

var fontSizes = map[string]float64{
	"text-xs":   0.75,
	"text-sm":   0.875,
	"text-base": 1,
	"text-lg":   1.125,
	"text-xl":   1.25,
	"text-2xl":  1.5,
	"text-3xl":  1.875,
	"text-4xl":  2.25,
}

var alignments = map[string]string{
	"text-left":   "left",
	"text-center": "center",
	"text-right":  "right",
}

// ResolveStyles parses Tailwind class strings into a Class. Later classes
// override earlier ones.
func ResolveStyles(styles ...string) Class {
	class := Class{
		Name: strings.TrimSpace(strings.Join(styles, " ")),
		Font: &Font{},
	}

	for _, style := range styles {
		for _, c := range strings.Fields(style) {
			applyClass(&class, c)
		}
	}
	return class
}

func applyClass(class *Class, c string) {
	if size, ok := fontSizes[c]; ok {
		class.Font.Size = size
		return
	}
	if align, ok := alignments[c]; ok {
		class.Align = align
		return
	}
	if size, ok := arbitrarySize(c); ok {
		class.Font.Size = size
		return
	}

	switch c {
	case "bold", "font-bold", "font-semibold":
		class.Font.Bold = true
		return
	case "font-normal":
		class.Font.Bold = false
		return
	case "italic":
		class.Font.Italic = true
		return
	case "not-italic":
		class.Font.Italic = false
		return
	case "underline":
		class.Font.Underline = true
		return
	case "no-underline":
		class.Font.Underline = false
		return
	}

	hex := tailwind.Color(c)
	if hex == "" {
		return
	}
	switch {
	case strings.HasPrefix(c, "text-"):
		class.Foreground = &Color{Hex: hex}
	case strings.HasPrefix(c, "bg-"):
		class.Background = &Color{Hex: hex}
	case strings.HasPrefix(c, "border-"):
		class.Border = &Color{Hex: hex}
	}
}

// arbitrarySize handles text-[10px] and text-[10pt]; both map to points.
func arbitrarySize(c string) (float64, bool) {
	if !strings.HasPrefix(c, "text-[") || !strings.HasSuffix(c, "]") {
		return 0, false
	}
	v := strings.TrimSuffix(strings.TrimPrefix(c, "text-["), "]")
	v = strings.TrimSuffix(strings.TrimSuffix(v, "px"), "pt")
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n / 16, true
}
