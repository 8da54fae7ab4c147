package event

import (
	"syscall"
	"unsafe"
)

// イベントタイプの定数（input-event-codes.hより）
const (
	Syn = 0x00 // 同期イベント
	Key = 0x01 // キーイベント
	Abs = 0x03 // 絶対座標イベント

	AbsX            = 0x00 // X軸の絶対座標
	AbsY            = 0x01 // Y軸の絶対座標
	AbsMtSlot       = 0x2f // マルチタッチスロット
	AbsMtPositionX  = 0x35 // マルチタッチのX座標
	AbsMtPositionY  = 0x36 // マルチタッチのY座標
	AbsMtTrackingId = 0x39 // タッチ追跡用ID

	SynReport  = 0     // イベント報告の同期
	SynDropped = 3     // バッファ溢れ
	BtnTouch   = 0x14a // タッチイベント

	KeyMax = 0x2ff
	AbsMax = 0x3f

	InputPropDirect = 0x01 // 画面に直接触れる入力（タッチパッドは含まない）
	InputPropMax    = 0x1f
)

// ioctl（input.hより）
const (
	EVIOCGRAB = 0x40044590 // デバイスの排他制御用のIOCTL
)

// EVIOCGNAME はデバイス名取得用のIOCTLを返す
func EVIOCGNAME(length int) uintptr {
	return ioc(iocRead, 'E', 0x06, uint32(length))
}

// EVIOCGBIT はイベントタイプごとの対応ビット取得用のIOCTLを返す
func EVIOCGBIT(evType int, length int) uintptr {
	return ioc(iocRead, 'E', uint32(0x20+evType), uint32(length))
}

// EVIOCGPROP はデバイスプロパティ取得用のIOCTLを返す
func EVIOCGPROP(length int) uintptr {
	return ioc(iocRead, 'E', 0x09, uint32(length))
}

// EVIOCGABS は軸の範囲取得用のIOCTLを返す
func EVIOCGABS(abs int) uintptr {
	return ioc(iocRead, 'E', uint32(0x40+abs), uint32(unsafe.Sizeof(AbsInfo{})))
}

// _IOCマクロ
const (
	iocNRShift   = 0
	iocTypeShift = 8
	iocSizeShift = 16
	iocDirShift  = 30

	iocRead = 2
)

func ioc(dir uint32, typ uint32, nr uint32, size uint32) uintptr {
	return uintptr(dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNRShift | size<<iocSizeShift)
}

// Event は入力イベントを表す構造体
type Event struct {
	Time  syscall.Timeval // イベント発生時刻
	Type  uint16          // イベントタイプ
	Code  uint16          // イベントコード
	Value int32           // イベント値
}

// AbsInfo は軸の範囲を表す構造体（struct input_absinfo）
type AbsInfo struct {
	Value      int32
	Minimum    int32
	Maximum    int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}
