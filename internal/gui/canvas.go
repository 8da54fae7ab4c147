package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"github.com/char5742/tspress/internal/calib"
)

// CalibrationCanvas はキャリブレーション格子とDown/Upマーカーを描くウィジェット
// ポインターの押下・解放をcalib.Eventとして通知する
type CalibrationCanvas struct {
	widget.BaseWidget
	state    *calib.State
	geometry calib.Geometry
	onEvent  func(calib.Event)
	onResize func(calib.Size)
}

var (
	_ desktop.Mouseable = (*CalibrationCanvas)(nil)
	_ mobile.Touchable  = (*CalibrationCanvas)(nil)
)

// NewCalibrationCanvas は新しいキャンバスを作成する
func NewCalibrationCanvas(state *calib.State, geometry calib.Geometry, onEvent func(calib.Event)) *CalibrationCanvas {
	c := &CalibrationCanvas{
		state:    state,
		geometry: geometry,
		onEvent:  onEvent,
	}
	c.ExtendBaseWidget(c)
	return c
}

func (c *CalibrationCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &canvasRenderer{board: c}
	r.rebuild(c.Size())
	return r
}

// Resize は大きさを変え、変更を通知する
func (c *CalibrationCanvas) Resize(size fyne.Size) {
	c.BaseWidget.Resize(size)
	if c.onResize != nil {
		c.onResize(toSize(size))
	}
}

func (c *CalibrationCanvas) MouseDown(e *desktop.MouseEvent) {
	c.emit(calib.PointerDown(toPosition(e.Position)))
}

func (c *CalibrationCanvas) MouseUp(e *desktop.MouseEvent) {
	c.emit(calib.PointerUp(toPosition(e.Position)))
}

// モバイルドライバではタッチがポインターとして届く
func (c *CalibrationCanvas) TouchDown(e *mobile.TouchEvent) {
	c.emit(calib.PointerDown(toPosition(e.Position)))
}

func (c *CalibrationCanvas) TouchUp(e *mobile.TouchEvent) {
	c.emit(calib.PointerUp(toPosition(e.Position)))
}

func (c *CalibrationCanvas) TouchCancel(*mobile.TouchEvent) {}

func (c *CalibrationCanvas) emit(ev calib.Event) {
	if c.onEvent != nil {
		c.onEvent(ev)
	}
}

func toPosition(p fyne.Position) calib.Position {
	return calib.Pt(int(p.X), int(p.Y))
}

func toSize(s fyne.Size) calib.Size {
	return calib.Size{W: int(s.Width), H: int(s.Height)}
}

// canvasRenderer はcalib.Renderの出力をcanvas.Lineに変換する
type canvasRenderer struct {
	board   *CalibrationCanvas
	pool    []*canvas.Line
	objects []fyne.CanvasObject
}

func (r *canvasRenderer) Line(col color.Color, from, to calib.Position) {
	n := len(r.objects)
	if n == len(r.pool) {
		l := canvas.NewLine(col)
		l.StrokeWidth = 1
		r.pool = append(r.pool, l)
	}
	l := r.pool[n]
	l.StrokeColor = col
	l.Position1 = fyne.NewPos(float32(from.X), float32(from.Y))
	l.Position2 = fyne.NewPos(float32(to.X), float32(to.Y))
	r.objects = append(r.objects, l)
}

func (r *canvasRenderer) rebuild(size fyne.Size) {
	r.objects = r.objects[:0]
	calib.Render(r, r.board.state, toSize(size), r.board.geometry)
}

func (r *canvasRenderer) Layout(size fyne.Size) {
	r.rebuild(size)
}

func (r *canvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(0, 0)
}

func (r *canvasRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *canvasRenderer) Refresh() {
	r.rebuild(r.board.Size())
	for _, o := range r.objects {
		o.Refresh()
	}
	canvas.Refresh(r.board)
}

func (r *canvasRenderer) Destroy() {}
