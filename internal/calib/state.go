package calib

import (
	"fmt"
	"strings"
)

// Position はウィンドウ座標上の位置を表す構造体
type Position struct {
	X int
	Y int
}

// Unset は未記録の位置を表す（X = -1）
var Unset = Position{X: -1, Y: 0}

// Pt はPositionを作成する
func Pt(x, y int) Position {
	return Position{X: x, Y: y}
}

// IsSet は位置が記録済みかどうかを返す
func (p Position) IsSet() bool {
	return p.X >= 0
}

func (p Position) String() string {
	if !p.IsSet() {
		return "unset"
	}
	return fmt.Sprintf("%d, %d", p.X, p.Y)
}

// InitialStatus は起動直後のステータス表示
const InitialStatus = "#"

// State は画面に描画するフィードバックの状態を保持する構造体
// UIスレッドからのみ変更される
type State struct {
	Down   Position // 最後に押された位置
	Up     Position // 最後に離された位置
	Status string   // 直近のイベントの説明
}

// NewState は初期状態を作成する
func NewState() *State {
	return &State{
		Down:   Unset,
		Up:     Unset,
		Status: InitialStatus,
	}
}

// RecordButtonPress は番号ボタンの押下を記録する
// 戻り値は再描画が必要かどうか
func (s *State) RecordButtonPress(id int) bool {
	s.Status = fmt.Sprintf("Btn: %d", id)
	s.Down = Unset
	s.Up = Unset
	return true
}

// RecordPointerDown はポインターの押下位置を記録する
func (s *State) RecordPointerDown(p Position) bool {
	s.Status = fmt.Sprintf("Down: %d, %d", p.X, p.Y)
	s.Down = p
	s.Up = Unset
	return true
}

// RecordPointerUp はポインターの解放位置を記録する（Downは変更しない）
func (s *State) RecordPointerUp(p Position) bool {
	s.Status = fmt.Sprintf("Up: %d, %d", p.X, p.Y)
	s.Up = p
	return true
}

// RecordTouchEvent はタッチイベントの内容をステータスに書き込む
// Down/Upには触れないのでキャンバスの再描画は不要
func (s *State) RecordTouchEvent(phaseLabel, deviceName string, points []TouchPoint) bool {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (%d point(s))\n", phaseLabel, deviceName, len(points))
	for _, p := range points {
		fmt.Fprintf(&b, "(%d,%d %s)", p.Pos.X, p.Pos.Y, p.Phase)
	}
	s.Status = b.String()
	return false
}
