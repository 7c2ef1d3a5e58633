package syntax

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#ffffff", color.RGBA{255, 255, 255, 255}, true},
		{"#808080", color.RGBA{128, 128, 128, 255}, true},
		{"f00", color.RGBA{255, 0, 0, 255}, true},
		{"#0a0B0c", color.RGBA{10, 11, 12, 255}, true},
		{"#12345", color.RGBA{}, false},
		{"#gggggg", color.RGBA{}, false},
		{"", color.RGBA{}, false},
		{"4", color.RGBA{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseHex(tt.in)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestHighlighter_NoLexer(t *testing.T) {
	h := New("notes.unknownext", "monokai")
	require.False(t, h.HasLexer())
	require.Nil(t, h.LineColors("anything at all"))
}

func TestHighlighter_GoLine(t *testing.T) {
	h := New("main.go", "monokai")
	require.True(t, h.HasLexer())

	line := `func main() { return "x" }`
	spans := h.LineColors(line)
	require.NotEmpty(t, spans)

	for i, s := range spans {
		require.Less(t, s.Start, s.End)
		require.LessOrEqual(t, s.End, len([]rune(line)))
		if i > 0 {
			require.GreaterOrEqual(t, s.Start, spans[i-1].End, "spans must not overlap")
		}
	}

	// The keyword and the string literal get different colors in monokai.
	fg := h.Foreground()
	kw := ColorAt(spans, 0, fg)
	str := ColorAt(spans, 21, fg)
	require.NotEqual(t, kw, str)
}

func TestHighlighter_Disabled(t *testing.T) {
	h := New("main.go", "github")
	h.SetEnabled(false)
	require.False(t, h.Enabled())
	require.Nil(t, h.LineColors("package main"))
}

func TestHighlighter_Analyse(t *testing.T) {
	h := New("", "vim")
	require.False(t, h.HasLexer())

	h.Analyse("#!/bin/sh\necho hi\n")
	require.True(t, h.HasLexer())
}

func TestColorAt_Default(t *testing.T) {
	def := color.RGBA{1, 2, 3, 255}
	spans := []ColorSpan{{Start: 2, End: 4, Color: color.RGBA{9, 9, 9, 255}}}

	require.Equal(t, def, ColorAt(spans, 0, def))
	require.Equal(t, color.RGBA{9, 9, 9, 255}, ColorAt(spans, 3, def))
	require.Equal(t, def, ColorAt(spans, 4, def))
}

func TestHighlighter_UnknownStyleFallsBack(t *testing.T) {
	h := New("main.go", "no-such-style")
	require.Equal(t, uint8(0xff), h.Foreground().A)
	require.Equal(t, uint8(0xff), h.Background().A)
}
