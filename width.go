package kli

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/width"
)

// WidthClassifier computes the column width of a grapheme cluster.
// East-Asian ambiguous characters count as one column unless AmbiguousWide
// is set.
type WidthClassifier struct {
	AmbiguousWide bool
}

// DefaultWidth classifies ambiguous characters as narrow.
var DefaultWidth = WidthClassifier{}

// Grapheme is one user-perceived character and its column width.
type Grapheme struct {
	Text  string
	Width int
}

// ClassifyWidth returns the width of g using DefaultWidth.
func ClassifyWidth(g string) int {
	return DefaultWidth.Width(g)
}

// SegmentWithWidth splits s into grapheme clusters using DefaultWidth.
func SegmentWithWidth(s string) []Grapheme {
	return DefaultWidth.Segment(s)
}

// Width returns 0, 1 or 2 for a single grapheme cluster.
func (wc WidthClassifier) Width(g string) int {
	if g == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(g)
	if isZeroWidth(r) {
		return 0
	}
	if isEmojiPresentation(g, r) {
		return 2
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	case width.EastAsianAmbiguous:
		if wc.AmbiguousWide {
			return 2
		}
	}
	return 1
}

// Segment splits s into extended grapheme clusters paired with their width.
func (wc WidthClassifier) Segment(s string) []Grapheme {
	if s == "" {
		return nil
	}
	out := make([]Grapheme, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, Grapheme{Text: cluster, Width: wc.Width(cluster)})
	}
	return out
}

// StringWidth sums the widths of the clusters in s.
func (wc WidthClassifier) StringWidth(s string) int {
	w := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		w += wc.Width(cluster)
	}
	return w
}

// isZeroWidth covers C0/C1 controls, DEL, combining marks and format
// characters such as ZWJ or ZWSP appearing at the start of a cluster.
func isZeroWidth(r rune) bool {
	switch {
	case r < 0x20, r >= 0x7f && r < 0xa0:
		return true
	case r < 0x300:
		return false
	}
	return unicode.In(r, unicode.Mn, unicode.Me, unicode.Mc, unicode.Cf)
}

// isEmojiPresentation reports clusters that terminals draw as a two-column
// emoji: explicit VS16, keycaps, flag pairs, ZWJ sequences and pictographs
// with default emoji presentation.
func isEmojiPresentation(g string, first rune) bool {
	if first < 0x80 && len(g) == 1 {
		return false
	}
	for _, r := range g[utf8.RuneLen(first):] {
		switch r {
		case 0xfe0f, 0x20e3:
			return true
		case 0xfe0e:
			return false
		}
	}
	if first >= 0x1f1e6 && first <= 0x1f1ff {
		return utf8.RuneCountInString(g) >= 2
	}
	// uniseg reports 2 for default-emoji-presentation pictographs and for
	// East-Asian wide characters; the latter are resolved by the caller.
	return first >= 0x2000 && uniseg.StringWidth(g) == 2
}
