package tailwind

import (
	"fmt"
	"strings"
)

var prefixes = []string{"bg-", "text-", "border-", "fill-", "stroke-"}

// TailwindSpecialColors are colors without a shade scale
var TailwindSpecialColors = map[string]string{
	"black":       "#000000",
	"white":       "#ffffff",
	"transparent": "transparent",
}

// TailwindColors is the subset of the Tailwind palette used by report themes
var TailwindColors = map[string]map[string]string{
	"slate": {
		"50": "#f8fafc", "100": "#f1f5f9", "200": "#e2e8f0", "300": "#cbd5e1", "400": "#94a3b8",
		"500": "#64748b", "600": "#475569", "700": "#334155", "800": "#1e293b", "900": "#0f172a", "950": "#020617",
	},
	"gray": {
		"50": "#f9fafb", "100": "#f3f4f6", "200": "#e5e7eb", "300": "#d1d5db", "400": "#9ca3af",
		"500": "#6b7280", "600": "#4b5563", "700": "#374151", "800": "#1f2937", "900": "#111827", "950": "#030712",
	},
	"red": {
		"50": "#fef2f2", "100": "#fee2e2", "200": "#fecaca", "300": "#fca5a5", "400": "#f87171",
		"500": "#ef4444", "600": "#dc2626", "700": "#b91c1c", "800": "#991b1b", "900": "#7f1d1d", "950": "#450a0a",
	},
	"amber": {
		"50": "#fffbeb", "100": "#fef3c7", "200": "#fde68a", "300": "#fcd34d", "400": "#fbbf24",
		"500": "#f59e0b", "600": "#d97706", "700": "#b45309", "800": "#92400e", "900": "#78350f", "950": "#451a03",
	},
	"green": {
		"50": "#f0fdf4", "100": "#dcfce7", "200": "#bbf7d0", "300": "#86efac", "400": "#4ade80",
		"500": "#22c55e", "600": "#16a34a", "700": "#15803d", "800": "#166534", "900": "#14532d", "950": "#052e16",
	},
	"blue": {
		"50": "#eff6ff", "100": "#dbeafe", "200": "#bfdbfe", "300": "#93c5fd", "400": "#60a5fa",
		"500": "#3b82f6", "600": "#2563eb", "700": "#1d4ed8", "800": "#1e40af", "900": "#1e3a8a", "950": "#172554",
	},
	"indigo": {
		"50": "#eef2ff", "100": "#e0e7ff", "200": "#c7d2fe", "300": "#a5b4fc", "400": "#818cf8",
		"500": "#6366f1", "600": "#4f46e5", "700": "#4338ca", "800": "#3730a3", "900": "#312e81", "950": "#1e1b4b",
	},
}

func trimPrefix(colorClass string) string {
	for _, prefix := range prefixes {
		if strings.HasPrefix(colorClass, prefix) {
			return strings.TrimPrefix(colorClass, prefix)
		}
	}
	return colorClass
}

// ParseTailwindColor parses a Tailwind color class and returns the hex color value
// Supports formats like:
// - "red-500" -> base color with shade
// - "bg-blue-900" -> background color prefix
// - "text-gray-500" -> text color prefix
// - "red" -> defaults to 500 shade
// - "black", "white", "transparent" -> special colors
// - "text-[#1e3a8a]" -> arbitrary hex value
func ParseTailwindColor(colorClass string) (string, error) {
	if colorClass == "" {
		return "", fmt.Errorf("empty color class")
	}

	colorName := trimPrefix(colorClass)

	if strings.HasPrefix(colorName, "[#") && strings.HasSuffix(colorName, "]") {
		return strings.TrimSuffix(strings.TrimPrefix(colorName, "["), "]"), nil
	}

	if color, ok := TailwindSpecialColors[colorName]; ok {
		return color, nil
	}

	parts := strings.Split(colorName, "-")
	switch len(parts) {
	case 1:
		if colorMap, ok := TailwindColors[parts[0]]; ok {
			return colorMap["500"], nil
		}
		return "", fmt.Errorf("unknown color '%s'", colorName)
	case 2:
		colorMap, ok := TailwindColors[parts[0]]
		if !ok {
			return "", fmt.Errorf("unknown color '%s'", parts[0])
		}
		if shade, ok := colorMap[parts[1]]; ok {
			return shade, nil
		}
		return "", fmt.Errorf("invalid shade '%s' for color '%s'", parts[1], parts[0])
	}
	return "", fmt.Errorf("unknown color '%s'", colorName)
}

// IsTailwindColor checks if a string is a valid Tailwind color class
func IsTailwindColor(colorClass string) bool {
	_, err := ParseTailwindColor(colorClass)
	return err == nil
}

// Color converts a Tailwind color class to a hex string, or "" for transparent
// and unknown colors
func Color(colorClass string) string {
	hexColor, err := ParseTailwindColor(colorClass)
	if err != nil || hexColor == "transparent" {
		return ""
	}
	return hexColor
}
