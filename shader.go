package kli

// ShaderCell is what a shader produces for one cell. An empty Content keeps
// whatever the cell already holds.
type ShaderCell struct {
	Style   TextStyle
	Content string
}

// Shader computes a cell from its normalized position inside a box's content
// rect. u runs 0..1 left to right, v runs 0..1 bottom to top; a single row or
// column sits at 0.5. Shaders are called once per cell and must not depend on
// call order.
type Shader func(u, v float64, width, height int) ShaderCell

// shaderCoord maps index i of n cells to [0,1].
func shaderCoord(i, n int) float64 {
	if n <= 1 {
		return 0.5
	}
	return float64(i) / float64(n-1)
}

// runShader evaluates s over r and writes the results into b.
func runShader(b *CellBuffer, r Rect, s Shader, wc WidthClassifier) {
	if s == nil || r.Empty() {
		return
	}
	for j := 0; j < r.Height; j++ {
		v := 1 - shaderCoord(j, r.Height)
		if r.Height <= 1 {
			v = 0.5
		}
		for i := 0; i < r.Width; i++ {
			out := s(shaderCoord(i, r.Width), v, r.Width, r.Height)
			x, y := r.X+i, r.Y+j
			if out.Content != "" {
				b.SetChar(x, y, 1, 1, out.Content, wc.StringWidth(out.Content), out.Style, false)
				continue
			}
			b.SetTextStyle(x, y, 1, 1, out.Style, false)
		}
	}
}

// GradientShader blends the background from one color to another. Vertical
// gradients run top to bottom.
func GradientShader(from, to Color, vertical bool) Shader {
	return func(u, v float64, _, _ int) ShaderCell {
		t := u
		if vertical {
			t = 1 - v
		}
		return ShaderCell{Style: TextStyle{}.WithBG(from.Blend(to, t))}
	}
}
