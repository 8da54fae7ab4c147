package calib

import "image/color"

// 描画色
var (
	TargetColor = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	DownColor   = color.NRGBA{R: 0, G: 0, B: 255, A: 255}
	UpColor     = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
)

// Canvas は線分を描画できる出力先
type Canvas interface {
	Line(c color.Color, from, to Position)
}

// Size はキャンバスの大きさ
type Size struct {
	W int
	H int
}

// Geometry はキャリブレーション格子とマーカーの寸法
type Geometry struct {
	Origin    int // 最初の格子点の座標
	Step      int // 格子の間隔
	Margin    int // 右端・下端の余白（ボタン行の下に描かないため）
	TargetArm int // 格子十字の腕の長さ
	MarkerArm int // Down/Upマーカーの腕の長さ
}

// DefaultGeometry は既定の寸法を返す
func DefaultGeometry() Geometry {
	return Geometry{
		Origin:    100,
		Step:      100,
		Margin:    70,
		TargetArm: 5,
		MarkerArm: 8,
	}
}

// GridPoints は格子点を列挙する（x外側、y内側の順）
func GridPoints(size Size, g Geometry) []Position {
	if g.Step <= 0 {
		return nil
	}
	var pts []Position
	for x := g.Origin; x < size.W-g.Margin; x += g.Step {
		for y := g.Origin; y < size.H-g.Margin; y += g.Step {
			pts = append(pts, Pt(x, y))
		}
	}
	return pts
}

// Render は状態をキャンバスに描画する
// 後から描いたものが上に重なる
func Render(c Canvas, s *State, size Size, g Geometry) {
	for _, p := range GridPoints(size, g) {
		drawCross(c, TargetColor, p, g.TargetArm)
	}

	// タップで押下と解放が同じ位置なら Up だけ描く
	if s.Down.IsSet() && s.Down != s.Up {
		drawCross(c, DownColor, s.Down, g.MarkerArm)
	}

	if s.Up.IsSet() {
		drawCross(c, UpColor, s.Up, g.MarkerArm)
	}
}

func drawCross(c Canvas, col color.Color, p Position, arm int) {
	c.Line(col, Pt(p.X-arm, p.Y), Pt(p.X+arm, p.Y))
	c.Line(col, Pt(p.X, p.Y-arm), Pt(p.X, p.Y+arm))
}
