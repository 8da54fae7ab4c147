package touch

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"unsafe"

	"github.com/char5742/tspress/internal/event"
	"github.com/char5742/tspress/internal/utils"
)

// 監視対象のディレクトリ
var inputDir = "/dev/input"

type Device struct {
	Name string
	Path string
	Type DeviceType
	X    AbsRange // X軸の値の範囲
	Y    AbsRange // Y軸の値の範囲
}

// AbsRange は軸が報告する値の範囲（両端を含む）
type AbsRange struct {
	Min int32
	Max int32
}

// Scale は軸の値を0からlength-1の座標に変換する
// 範囲が不明な場合やlengthが0以下の場合は値をそのまま返す
func (r AbsRange) Scale(v int32, length int) int {
	if r.Max <= r.Min || length <= 0 {
		return int(v)
	}
	n := int(int64(v-r.Min) * int64(length) / (int64(r.Max-r.Min) + 1))
	if n < 0 {
		return 0
	}
	if n >= length {
		return length - 1
	}
	return n
}

// デバイスタイプを表す列挙型
type DeviceType int

const (
	DeviceTypeMultiTouch DeviceType = iota
	DeviceTypeSingleTouch
)

func (t DeviceType) String() string {
	switch t {
	case DeviceTypeMultiTouch:
		return "multi-touch"
	case DeviceTypeSingleTouch:
		return "single-touch"
	default:
		return "unknown"
	}
}

// ScanDevices は/dev/input/event*を調べ、タッチ入力に対応したデバイスを返す
// 開けないデバイス（権限不足など）は無視する
func ScanDevices() ([]Device, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, err
	}

	var devices []Device
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), "event") {
			continue
		}
		dev, ok, err := inspectDevice(filepath.Join(inputDir, entry.Name()))
		if err != nil || !ok {
			continue
		}
		devices = append(devices, dev)
	}

	sortDevices(devices)
	return devices, nil
}

// sortDevices はevent番号順に並べる（event10がevent2より後になるように）
func sortDevices(devices []Device) {
	num := func(path string) int {
		n, err := strconv.Atoi(strings.TrimPrefix(filepath.Base(path), "event"))
		if err != nil {
			return -1
		}
		return n
	}
	sort.SliceStable(devices, func(i, j int) bool {
		return num(devices[i].Path) < num(devices[j].Path)
	})
}

// inspectDevice はデバイス名と対応イベントを問い合わせる
func inspectDevice(path string) (Device, bool, error) {
	f, err := os.OpenFile(path, syscall.O_RDONLY|syscall.O_NONBLOCK, 0)
	if err != nil {
		return Device{}, false, fmt.Errorf("デバイスファイルを開くのに失敗しました: %w", err)
	}
	defer f.Close()

	name := make([]byte, 256)
	if err := utils.IOCtl(f, event.EVIOCGNAME(len(name)), uintptr(unsafe.Pointer(&name[0]))); err != nil {
		return Device{}, false, fmt.Errorf("デバイス名の取得に失敗しました: %w", err)
	}

	absBits := make([]byte, event.AbsMax/8+1)
	if err := utils.IOCtl(f, event.EVIOCGBIT(event.Abs, len(absBits)), uintptr(unsafe.Pointer(&absBits[0]))); err != nil {
		return Device{}, false, fmt.Errorf("絶対座標ビットの取得に失敗しました: %w", err)
	}

	keyBits := make([]byte, event.KeyMax/8+1)
	if err := utils.IOCtl(f, event.EVIOCGBIT(event.Key, len(keyBits)), uintptr(unsafe.Pointer(&keyBits[0]))); err != nil {
		return Device{}, false, fmt.Errorf("キービットの取得に失敗しました: %w", err)
	}

	propBits := make([]byte, event.InputPropMax/8+1)
	if err := utils.IOCtl(f, event.EVIOCGPROP(len(propBits)), uintptr(unsafe.Pointer(&propBits[0]))); err != nil {
		return Device{}, false, fmt.Errorf("デバイスプロパティの取得に失敗しました: %w", err)
	}

	typ, ok := classify(propBits, absBits, keyBits)
	if !ok {
		return Device{}, false, nil
	}

	dev := Device{
		Name: cString(name),
		Path: path,
		Type: typ,
	}

	xAxis, yAxis := event.AbsX, event.AbsY
	if typ == DeviceTypeMultiTouch {
		xAxis, yAxis = event.AbsMtPositionX, event.AbsMtPositionY
	}
	if dev.X, err = readRange(f, xAxis); err != nil {
		return Device{}, false, err
	}
	if dev.Y, err = readRange(f, yAxis); err != nil {
		return Device{}, false, err
	}

	return dev, true, nil
}

// readRange は軸の最小値と最大値を問い合わせる
func readRange(f *os.File, axis int) (AbsRange, error) {
	var info event.AbsInfo
	if err := utils.IOCtl(f, event.EVIOCGABS(axis), uintptr(unsafe.Pointer(&info))); err != nil {
		return AbsRange{}, fmt.Errorf("軸0x%02xの範囲の取得に失敗しました: %w", axis, err)
	}
	return AbsRange{Min: info.Minimum, Max: info.Maximum}, nil
}

// classify は対応ビットからタッチデバイスの種類を判定する
// 画面上の位置を直接指すデバイス（INPUT_PROP_DIRECT）だけをタッチスクリーンとみなす
func classify(propBits, absBits, keyBits []byte) (DeviceType, bool) {
	if !testBit(propBits, event.InputPropDirect) {
		return 0, false
	}
	if testBit(absBits, event.AbsMtPositionX) && testBit(absBits, event.AbsMtPositionY) {
		return DeviceTypeMultiTouch, true
	}
	if testBit(absBits, event.AbsX) && testBit(absBits, event.AbsY) && testBit(keyBits, event.BtnTouch) {
		return DeviceTypeSingleTouch, true
	}
	return 0, false
}

func testBit(bits []byte, n int) bool {
	if n/8 >= len(bits) {
		return false
	}
	return bits[n/8]&(1<<(n%8)) != 0
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// SelectDevice は使用するデバイスを選ぶ
// preferredに名前かパスが一致するデバイスを優先し、なければマルチタッチ、シングルタッチの順に最初のものを使う
func SelectDevice(devices []Device, preferred string) *Device {
	if preferred != "" {
		for i := range devices {
			if devices[i].Name == preferred || devices[i].Path == preferred {
				return &devices[i]
			}
		}
	}

	for _, typ := range []DeviceType{DeviceTypeMultiTouch, DeviceTypeSingleTouch} {
		for i := range devices {
			if devices[i].Type == typ {
				return &devices[i]
			}
		}
	}
	return nil
}
