package touch

import (
	"sort"
	"sync/atomic"
	"time"

	"github.com/char5742/tspress/internal/calib"
	"github.com/char5742/tspress/internal/event"
)

// slot は1本の指の状態
type slot struct {
	trackingID int32
	active     bool
	pressed    bool // このフレームで接触開始
	released   bool // このフレームで接触終了
	replaced   bool // 離されずに別の追跡IDに置き換わった
	pos        calib.Position
	prev       calib.Position
}

// SlotTracker はevdevの生イベントをフレーム単位のタッチイベントにまとめる
type SlotTracker struct {
	device     string
	multiTouch bool
	slots      map[int32]*slot
	current    int32
	active     int  // 前フレーム終了時点の接触数
	dropped    bool // SYN_DROPPEDを受け取った
	rangeX     AbsRange
	rangeY     AbsRange
	target     atomic.Pointer[calib.Size] // 座標の変換先（ウィンドウの大きさ）
}

// NewSlotTracker は新しいトラッカーを作成する
// multiTouchがfalseの場合はABS_X/ABS_YとBTN_TOUCHをスロット0として扱う
func NewSlotTracker(device string, multiTouch bool) *SlotTracker {
	return &SlotTracker{
		device:     device,
		multiTouch: multiTouch,
		slots:      make(map[int32]*slot),
	}
}

// SetRange はデバイスが報告する座標の範囲を設定する
func (t *SlotTracker) SetRange(x, y AbsRange) {
	t.rangeX = x
	t.rangeY = y
}

// SetTarget は座標の変換先の大きさを設定する
// 別のゴルーチンから呼んでもよい。設定されるまでは生の値を報告する
func (t *SlotTracker) SetTarget(size calib.Size) {
	t.target.Store(&size)
}

// scale は生の座標をウィンドウ座標に変換する
func (t *SlotTracker) scale(p calib.Position) calib.Position {
	size := t.target.Load()
	if size == nil {
		return p
	}
	return calib.Pt(
		t.rangeX.Scale(int32(p.X), size.W),
		t.rangeY.Scale(int32(p.Y), size.H),
	)
}

func (t *SlotTracker) slot(n int32) *slot {
	s, ok := t.slots[n]
	if !ok {
		s = &slot{trackingID: -1}
		t.slots[n] = s
	}
	return s
}

func (t *SlotTracker) press(s *slot, id int32) {
	// 確定済みの接触が置き換わった場合は、古い接触の終了も報告する
	if s.active && !s.pressed {
		s.replaced = true
	}
	s.trackingID = id
	s.active = true
	s.pressed = true
	s.released = false
}

func (t *SlotTracker) release(s *slot) {
	if s.active {
		s.released = true
	}
}

// Feed はイベントを1つ処理し、SYN_REPORTでフレームが完成したらイベントを返す
func (t *SlotTracker) Feed(ev event.Event) (calib.Event, bool) {
	switch ev.Type {
	case event.Abs:
		t.feedAbs(ev)
	case event.Key:
		if ev.Code == event.BtnTouch && !t.multiTouch {
			s := t.slot(0)
			if ev.Value != 0 {
				if !s.active {
					t.press(s, 0)
				}
			} else {
				t.release(s)
			}
		}
	case event.Syn:
		switch ev.Code {
		case event.SynDropped:
			t.dropped = true
		case event.SynReport:
			if t.dropped {
				t.dropped = false
				t.commit()
				return calib.Event{}, false
			}
			return t.frame(time.Unix(0, ev.Time.Nano()))
		}
	}
	return calib.Event{}, false
}

func (t *SlotTracker) feedAbs(ev event.Event) {
	if t.multiTouch {
		switch ev.Code {
		case event.AbsMtSlot:
			t.current = ev.Value
		case event.AbsMtTrackingId:
			s := t.slot(t.current)
			if ev.Value < 0 {
				t.release(s)
			} else if !s.active || s.trackingID != ev.Value {
				t.press(s, ev.Value)
			}
		case event.AbsMtPositionX:
			t.slot(t.current).pos.X = int(ev.Value)
		case event.AbsMtPositionY:
			t.slot(t.current).pos.Y = int(ev.Value)
		}
		return
	}

	switch ev.Code {
	case event.AbsX:
		t.slot(0).pos.X = int(ev.Value)
	case event.AbsY:
		t.slot(0).pos.Y = int(ev.Value)
	}
}

// frame は現在のスロット状態からタッチイベントを組み立てる
func (t *SlotTracker) frame(ts time.Time) (calib.Event, bool) {
	keys := make([]int32, 0, len(t.slots))
	for k := range t.slots {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var points []calib.TouchPoint
	changed := false
	remaining := 0
	for _, k := range keys {
		s := t.slots[k]
		if !s.active {
			continue
		}

		if s.replaced {
			changed = true
			points = append(points, calib.TouchPoint{Pos: t.scale(s.prev), Phase: calib.PhaseReleased})
		}

		phase := calib.PhaseStationary
		switch {
		case s.released:
			phase = calib.PhaseReleased
		case s.pressed:
			phase = calib.PhasePressed
		case s.pos != s.prev:
			phase = calib.PhaseMoved
		}
		if phase != calib.PhaseStationary {
			changed = true
		}
		if !s.released {
			remaining++
		}
		points = append(points, calib.TouchPoint{Pos: t.scale(s.pos), Phase: phase})
	}

	before := t.active
	t.commit()

	if !changed {
		return calib.Event{}, false
	}

	kind := calib.KindTouchUpdate
	switch {
	case before == 0:
		kind = calib.KindTouchBegin
	case remaining == 0:
		kind = calib.KindTouchEnd
	}

	return calib.Touch(kind, &calib.TouchEvent{
		Device: t.device,
		Points: points,
		Time:   ts,
	}), true
}

// commit はフレームの変化を確定させる
func (t *SlotTracker) commit() {
	t.active = 0
	for _, s := range t.slots {
		if s.released {
			s.active = false
			s.trackingID = -1
		}
		s.pressed = false
		s.released = false
		s.replaced = false
		s.prev = s.pos
		if s.active {
			t.active++
		}
	}
}

// Active は現在接触中の指の数を返す
func (t *SlotTracker) Active() int {
	return t.active
}
