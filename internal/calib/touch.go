package calib

import "time"

// TouchPhase はタッチポイントのジェスチャー内での段階
type TouchPhase int

const (
	PhaseUnknown TouchPhase = iota
	PhasePressed
	PhaseMoved
	PhaseStationary
	PhaseReleased
)

func (p TouchPhase) String() string {
	switch p {
	case PhasePressed:
		return "Pressed"
	case PhaseMoved:
		return "Moved"
	case PhaseStationary:
		return "Stationary"
	case PhaseReleased:
		return "Released"
	default:
		return "???"
	}
}

// TouchPoint はマルチタッチイベント内の1つの接触点
type TouchPoint struct {
	Pos   Position
	Phase TouchPhase
}

// TouchEvent はデバイスから届いた1フレーム分のタッチ情報
// Timeはログ出力のみに使い、状態には保存しない
type TouchEvent struct {
	Device string
	Points []TouchPoint
	Time   time.Time
}
