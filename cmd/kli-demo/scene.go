package main

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/kungfusheep/kli"
)

const headline = `Hello Kli 111 222 333 444 555 666 777 888 999 000 Hello World 这个可以换行 😘
这是个非常好的问题，实际上是终端字符宽度（character width / display width）的问题`

const body = `Hello World 这个可以换行 😘
中文引号 “ ” 在多数终端中宽度为 1，因为它们的 East Asian Width 属性是 Ambiguous。
真正的中文标点如（）、，。属于 Wide，宽度为 2。

| 属性 | 含义 | 宽度 |
| F | 全角 | 2 |
| W | 宽 | 2 |
| H | 半角 | 1 |
| Na | 窄 | 1 |
| A | 模棱两可 | 1 或 2 |
| N | 中性 | 1 |

Set ambiguous_wide: true in the config to lay these out as two columns.`

// demo is the dev scene: a text pane beside a column of shader tiles.
type demo struct {
	scene *kli.Scene
	text  *kli.TextContainer
	tiles []*kli.Box

	// phase advances the wave shader. It is only touched on the render loop.
	phase float64
}

func buildDemo(cfg *Config, log *zap.Logger) *demo {
	d := &demo{
		scene: kli.NewScene(kli.SceneOptions{Logger: log, Width: cfg.Width()}),
	}
	border, _ := kli.BorderByName(cfg.Border)

	frame := kli.NewBox()
	frame.SetFlexDirection(kli.Row)
	frame.SetGap(kli.GutterAll, 1)
	frame.SetAlignItems(kli.AlignCenter)
	frame.SetMinHeight(kli.Percent(100))
	frame.SetMaxHeight(kli.Percent(100))
	frame.SetOverflow(kli.OverflowHidden)
	bg := cfg.Colors.Background.Color
	frame.SetBackground(&bg)

	left := kli.NewBox()
	left.SetFlexGrow(1)
	left.SetFlexShrink(1)
	left.SetHeight(kli.Percent(100))
	left.SetOverflow(kli.OverflowHidden)
	left.SetPadding(kli.EdgeHorizontal, kli.Px(1))
	left.SetBorderType(border)
	leftColor := cfg.Colors.LeftBorder.Color
	left.SetBorderColor(&leftColor)
	left.SetTitle("text")
	left.SetFocusable(true)

	right := kli.NewBox()
	right.SetFlexDirection(kli.Column)
	right.SetWidth(kli.Px(50))
	right.SetMinWidth(kli.Px(50))
	right.SetFlexGrow(0)
	right.SetFlexShrink(0)
	right.SetFlexBasis(kli.Px(1))
	right.SetMaxHeight(kli.Percent(100))
	right.SetOverflow(kli.OverflowHidden)
	right.SetPadding(kli.EdgeHorizontal, kli.Px(1))
	right.SetBorderType(border)
	rightColor := cfg.Colors.RightBorder.Color
	right.SetBorderColor(&rightColor)
	right.SetTitle("shaders")
	right.SetFocusable(true)

	d.text = kli.NewTextContainer()
	d.text.SetEllipsis(cfg.Ellipsis)
	heading := kli.NewText(kli.NewTextContent(headline))
	headingColor := cfg.Colors.Heading.Color
	bold := true
	heading.SetColor(&headingColor)
	heading.SetBold(&bold)
	d.text.SetText(kli.NewText(heading, kli.NewBreak(), kli.NewTextContent(body)))
	left.AddChild(d.text)

	tileColor := cfg.Colors.Tile.Color
	for i := range cfg.Tiles {
		tile := kli.NewBox()
		tile.SetFlexGrow(1)
		tile.SetHeight(kli.Px(7))
		tile.SetPadding(kli.EdgeHorizontal, kli.Px(1))
		tile.SetBorderType(border)
		tile.SetBorderColor(&tileColor)
		tile.SetTitle(fmt.Sprintf("Index : %d", i+1))
		switch i {
		case 0:
			tile.SetHeight(kli.Px(15))
			tile.SetShader(cornerShader)
		case 1:
			tile.SetAspectRatio(2)
			tile.SetHeight(kli.Px(15))
			tile.SetShader(d.waveShader)
		}
		right.AddChild(tile)
		d.tiles = append(d.tiles, tile)
	}

	frame.AddChild(left)
	frame.AddChild(right)
	d.scene.Root().AddChild(frame)
	return d
}

// cornerShader fades red along u and green along v.
func cornerShader(u, v float64, _, _ int) kli.ShaderCell {
	bg := kli.RGB(int(u*255), int(v*255), 0)
	return kli.ShaderCell{Style: kli.TextStyle{}.WithBG(bg)}
}

// waveShader draws rings of dots whose hue turns with the angle and whose
// brightness ripples outward over time.
func (d *demo) waveShader(u, v float64, _, _ int) kli.ShaderCell {
	x, y := u-0.5, v-0.5
	r := math.Hypot(x, y)
	angle := math.Atan2(y, x)

	wave := math.Sin(10*r-d.phase*3)*0.5 + 0.5
	hue := math.Mod((angle/math.Pi+1)*0.5+d.phase*0.2, 1)
	fg := kli.HSV(hue*360, 1, wave*wave)
	return kli.ShaderCell{Style: kli.TextStyle{}.WithFG(fg), Content: "●"}
}

// advance moves the animation forward by one frame.
func (d *demo) advance(f kli.Frame) {
	d.phase += f.Delta.Seconds()
	if d.phase > 20 {
		d.phase -= 20
	}
	d.scene.NotifyChange()
}
