package kli

// Escape sequences written by the renderer and the terminal.
const (
	seqReset          = "\x1b[0m"
	seqClearScreen    = "\x1b[2J\x1b[3J\x1b[H"
	seqHideCursor     = "\x1b[?25l"
	seqShowCursor     = "\x1b[?25h"
	seqAltScreenEnter = "\x1b[?1049h"
	seqAltScreenExit  = "\x1b[?1049l"
	seqMouseOn        = "\x1b[?1000h\x1b[?1002h\x1b[?1006h"
	seqMouseOff       = "\x1b[?1006l\x1b[?1002l\x1b[?1000l"
)

// appendCursor appends a CUP sequence for the zero-based cell (x,y).
func appendCursor(b []byte, x, y int) []byte {
	b = append(b, "\x1b["...)
	b = appendInt(b, y+1)
	b = append(b, ';')
	b = appendInt(b, x+1)
	return append(b, 'H')
}

// appendStyle appends a full SGR sequence for style. It always starts from a
// reset so attributes from the previous style never leak.
func appendStyle(b []byte, style CellStyle) []byte {
	b = append(b, "\x1b[0"...)
	if style.Attr.Has(AttrBold) {
		b = append(b, ";1"...)
	}
	if style.Attr.Has(AttrItalic) {
		b = append(b, ";3"...)
	}
	if style.Attr.Has(AttrUnderline) {
		b = append(b, ";4"...)
	}
	if style.HasFG {
		b = appendRGB(b, ";38;2;", style.FG)
	}
	if style.HasBG {
		b = appendRGB(b, ";48;2;", style.BG)
	}
	return append(b, 'm')
}

func appendRGB(b []byte, prefix string, c Color) []byte {
	b = append(b, prefix...)
	b = appendInt(b, int(c.R()))
	b = append(b, ';')
	b = appendInt(b, int(c.G()))
	b = append(b, ';')
	return appendInt(b, int(c.B()))
}

// appendInt appends an integer to a byte slice without allocation.
func appendInt(b []byte, n int) []byte {
	if n == 0 {
		return append(b, '0')
	}
	if n < 0 {
		b = append(b, '-')
		n = -n
	}
	var scratch [20]byte
	i := len(scratch)
	for n > 0 {
		i--
		scratch[i] = byte('0' + n%10)
		n /= 10
	}
	return append(b, scratch[i:]...)
}
