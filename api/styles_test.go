package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveStyles(t *testing.T) {
	tests := []struct {
		name     string
		styles   []string
		expected Class
	}{
		{
			name:   "single text color",
			styles: []string{"text-red-500"},
			expected: Class{
				Name:       "text-red-500",
				Foreground: &Color{Hex: "#ef4444"},
				Font:       &Font{},
			},
		},
		{
			name:   "header style",
			styles: []string{"bg-blue-900 text-white font-bold text-xs"},
			expected: Class{
				Name:       "bg-blue-900 text-white font-bold text-xs",
				Foreground: &Color{Hex: "#ffffff"},
				Background: &Color{Hex: "#1e3a8a"},
				Font:       &Font{Bold: true, Size: 0.75},
			},
		},
		{
			name:   "multiple font sizes (last wins)",
			styles: []string{"text-sm", "text-xl"},
			expected: Class{
				Name: "text-sm text-xl",
				Font: &Font{Size: 1.25},
			},
		},
		{
			name:   "arbitrary size and alignment",
			styles: []string{"text-[10px] text-center underline"},
			expected: Class{
				Name:  "text-[10px] text-center underline",
				Font:  &Font{Size: 0.625, Underline: true},
				Align: "center",
			},
		},
		{
			name:   "border color",
			styles: []string{"border-gray-300"},
			expected: Class{
				Name:   "border-gray-300",
				Border: &Color{Hex: "#d1d5db"},
				Font:   &Font{},
			},
		},
		{
			name:   "unknown classes are ignored",
			styles: []string{"shadow-lg rounded"},
			expected: Class{
				Name: "shadow-lg rounded",
				Font: &Font{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveStyles(tt.styles...))
		})
	}
}
