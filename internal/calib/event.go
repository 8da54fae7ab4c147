package calib

// EventKind はホストから届くイベントの種類
type EventKind int

const (
	KindOther EventKind = iota
	KindPointerDown
	KindPointerUp
	KindTouchBegin
	KindTouchUpdate
	KindTouchEnd
	KindButtonPress
)

func (k EventKind) String() string {
	switch k {
	case KindPointerDown:
		return "PointerDown"
	case KindPointerUp:
		return "PointerUp"
	case KindTouchBegin:
		return "Begin"
	case KindTouchUpdate:
		return "Update"
	case KindTouchEnd:
		return "End"
	case KindButtonPress:
		return "ButtonPress"
	default:
		return "Other"
	}
}

// IsTouch はタッチ系のイベントかどうかを返す
func (k EventKind) IsTouch() bool {
	return k == KindTouchBegin || k == KindTouchUpdate || k == KindTouchEnd
}

// Event はKindで判別するイベントの直和型
// Kindに対応するフィールドだけが意味を持つ
type Event struct {
	Kind   EventKind
	Pos    Position    // PointerDown / PointerUp
	Button int         // ButtonPress
	Touch  *TouchEvent // TouchBegin / TouchUpdate / TouchEnd
}

// PointerDown はポインター押下イベントを作成する
func PointerDown(p Position) Event {
	return Event{Kind: KindPointerDown, Pos: p}
}

// PointerUp はポインター解放イベントを作成する
func PointerUp(p Position) Event {
	return Event{Kind: KindPointerUp, Pos: p}
}

// ButtonPress は番号ボタン押下イベントを作成する
func ButtonPress(id int) Event {
	return Event{Kind: KindButtonPress, Button: id}
}

// Touch はタッチイベントを作成する
func Touch(kind EventKind, te *TouchEvent) Event {
	return Event{Kind: kind, Touch: te}
}

// Result はイベント処理の結果
type Result struct {
	Handled bool // falseならホストの既定処理に任せる
	Redraw  bool // キャンバスの再描画が必要
}

// Handle はイベントを状態の更新に変換する
func Handle(s *State, ev Event) Result {
	switch ev.Kind {
	case KindButtonPress:
		return Result{Handled: true, Redraw: s.RecordButtonPress(ev.Button)}
	case KindPointerDown:
		return Result{Handled: true, Redraw: s.RecordPointerDown(ev.Pos)}
	case KindPointerUp:
		return Result{Handled: true, Redraw: s.RecordPointerUp(ev.Pos)}
	case KindTouchBegin, KindTouchUpdate, KindTouchEnd:
		var device string
		var points []TouchPoint
		if ev.Touch != nil {
			device = ev.Touch.Device
			points = ev.Touch.Points
		}
		return Result{Handled: true, Redraw: s.RecordTouchEvent(ev.Kind.String(), device, points)}
	default:
		return Result{}
	}
}
