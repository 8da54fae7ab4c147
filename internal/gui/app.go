package gui

import (
	"log"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/char5742/tspress/internal/calib"
	"github.com/char5742/tspress/internal/config"
	"github.com/char5742/tspress/internal/touch"
)

// App はtspressのGUIアプリケーション構造体
type App struct {
	fyneApp fyne.App
	window  fyne.Window
	cfg     *config.Config
	state   *calib.State
	board   *CalibrationCanvas
	status  *statusView
	buttons []*widget.Button
	exit    *widget.Button
	touch   *touch.Service
	quit    func()

	// evdevのタッチ中と直後は、表示サーバーが同じ接触から作るポインターイベントを捨てる
	touchActive bool
	lastTouch   time.Time
	now         func() time.Time
}

const (
	// タッチ終了後もポインターイベントを捨てる時間
	pointerSuppression = 300 * time.Millisecond
	// 終了が届かないまま（デバイスの切断など）この時間が過ぎたらタッチ中とみなさない
	touchStale = 10 * time.Second
)

// NewApp は新しいGUIアプリケーションを作成する
func NewApp(fyneApp fyne.App, cfg *config.Config) *App {
	a := &App{
		fyneApp: fyneApp,
		cfg:     cfg,
		state:   calib.NewState(),
		quit:    fyneApp.Quit,
		now:     time.Now,
	}

	fyneApp.Settings().SetTheme(NewCalibrationTheme())

	a.window = a.newWindow()
	a.window.SetPadded(false)
	a.window.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	if cfg.Window.Fullscreen {
		a.window.SetFullScreen(true)
	}

	a.board = NewCalibrationCanvas(a.state, cfg.Geometry(), func(ev calib.Event) {
		a.Dispatch(ev)
	})
	a.board.onResize = a.resizeTouch
	a.status = newStatusView(a.state.Status)
	a.exit = widget.NewButton("Exit", a.Quit)

	// 幅の判定は起動時の一度だけ
	if cfg.ShowButtons() {
		a.buttons = makeButtons(func(id int) {
			a.Dispatch(calib.ButtonPress(id))
		})
	}

	a.window.SetContent(container.NewStack(
		a.board,
		makeControls(a.buttons, a.exit, a.status.text),
	))

	return a
}

// newWindow は枠なしウィンドウを作成する（デスクトップドライバのみ対応）
func (a *App) newWindow() fyne.Window {
	if a.cfg.Window.Borderless {
		if drv, ok := a.fyneApp.Driver().(desktop.Driver); ok {
			return drv.CreateSplashWindow()
		}
	}
	return a.fyneApp.NewWindow("tspress")
}

// Dispatch はイベントを状態に反映し、必要なら再描画を要求する
// 処理済みのタッチの間に届いたポインターイベントは捨てる
// UIスレッドから呼ぶこと
func (a *App) Dispatch(ev calib.Event) calib.Result {
	if a.pointerSuppressed(ev) {
		return calib.Result{}
	}

	res := calib.Handle(a.state, ev)
	if !res.Handled {
		return res
	}

	if ev.Kind.IsTouch() {
		a.touchActive = ev.Kind != calib.KindTouchEnd
		a.lastTouch = a.now()
		if ev.Touch != nil {
			logTouch(ev)
		}
	}

	a.status.SetText(a.state.Status)
	if res.Redraw {
		a.board.Refresh()
	}
	return res
}

// pointerSuppressed はポインターイベントがタッチから作られたものとみなせるかを返す
func (a *App) pointerSuppressed(ev calib.Event) bool {
	if ev.Kind != calib.KindPointerDown && ev.Kind != calib.KindPointerUp {
		return false
	}
	if a.lastTouch.IsZero() {
		return false
	}
	elapsed := a.now().Sub(a.lastTouch)
	if a.touchActive {
		return elapsed < touchStale
	}
	return elapsed < pointerSuppression
}

// postEvent は別のゴルーチンからイベントをUIスレッドに渡す
func (a *App) postEvent(ev calib.Event) {
	fyne.Do(func() {
		a.Dispatch(ev)
	})
}

// State は現在の表示状態を返す
func (a *App) State() *calib.State {
	return a.state
}

// Run はGUIアプリケーションを実行する
func (a *App) Run() {
	if a.cfg.Touch.Enabled {
		a.startTouch()
	}
	defer a.stopTouch()

	a.window.ShowAndRun()
}

// Quit はアプリケーションを終了する
func (a *App) Quit() {
	a.quit()
}

func (a *App) startTouch() {
	a.touch = touch.NewService(a.cfg.Touch.Device, a.cfg.Touch.Grab, a.postEvent)
	a.resizeTouch(toSize(a.board.Size()))
	if err := a.touch.Start(); err != nil {
		log.Printf("タッチ入力を使用できません: %v", err)
		a.touch = nil
	}
}

// resizeTouch はタッチ座標の変換先をキャンバスの大きさに合わせる
func (a *App) resizeTouch(size calib.Size) {
	if a.touch == nil || size.W <= 0 || size.H <= 0 {
		return
	}
	a.touch.SetTarget(size)
}

func (a *App) stopTouch() {
	if a.touch != nil {
		a.touch.Stop()
		a.touch = nil
	}
}

func logTouch(ev calib.Event) {
	te := ev.Touch
	points := make([]string, 0, len(te.Points))
	for _, p := range te.Points {
		points = append(points, p.Pos.String()+" "+p.Phase.String())
	}
	log.Printf("touch %s: device=%q time=%s points=[%s]",
		ev.Kind, te.Device, te.Time.Format("15:04:05.000000"), strings.Join(points, "; "))
}
