package touch

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/char5742/tspress/internal/calib"
	"github.com/char5742/tspress/internal/event"
	"github.com/char5742/tspress/internal/utils"
)

// 一度に読み取るイベント数
const readBatch = 64

// Source はタッチイベントの供給元
type Source interface {
	// Run はイベントをsinkに渡し続け、Closeされるかエラーで戻る
	Run(sink func(calib.Event)) error
	// SetTarget は座標の変換先の大きさを設定する
	SetTarget(size calib.Size)
	io.Closer
}

// Reader はevdevデバイスからタッチイベントを読み取る
type Reader struct {
	device  Device
	file    *os.File
	tracker *SlotTracker
	grabbed bool
}

// OpenReader はデバイスを開く
// grabがtrueの場合は他のプロセスにイベントが届かないよう専有する
func OpenReader(dev Device, grab bool) (*Reader, error) {
	f, err := os.OpenFile(dev.Path, syscall.O_RDONLY|syscall.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("デバイスファイルを開くのに失敗しました[path=%s]: %w", dev.Path, err)
	}

	r := &Reader{
		device:  dev,
		file:    f,
		tracker: NewSlotTracker(dev.Name, dev.Type == DeviceTypeMultiTouch),
	}
	r.tracker.SetRange(dev.X, dev.Y)

	if grab {
		if err := r.Grab(); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return r, nil
}

// Device は読み取り中のデバイスを返す
func (r *Reader) Device() Device {
	return r.device
}

// SetTarget はタッチ座標の変換先の大きさを設定する
func (r *Reader) SetTarget(size calib.Size) {
	r.tracker.SetTarget(size)
}

// Grab はデバイスを専有する
func (r *Reader) Grab() error {
	if r.grabbed {
		return nil
	}
	if err := utils.IOCtl(r.file, event.EVIOCGRAB, 1); err != nil {
		return fmt.Errorf("failed to grab device: %w", err)
	}
	r.grabbed = true
	return nil
}

// Release はデバイスの専有を解除する
func (r *Reader) Release() error {
	if !r.grabbed {
		return nil
	}
	if err := utils.IOCtl(r.file, event.EVIOCGRAB, 0); err != nil {
		return fmt.Errorf("failed to release device: %w", err)
	}
	r.grabbed = false
	return nil
}

func (r *Reader) Run(sink func(calib.Event)) error {
	err := readEvents(r.file, func(ev event.Event) {
		if out, ok := r.tracker.Feed(ev); ok {
			sink(out)
		}
	})
	if errors.Is(err, os.ErrClosed) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (r *Reader) Close() error {
	_ = r.Release()
	return r.file.Close()
}

// readEvents はinput_event構造体の列を読み取りfnに渡す
func readEvents(r io.Reader, fn func(event.Event)) error {
	size := binary.Size(event.Event{})
	buf := make([]byte, size*readBatch)
	events := make([]event.Event, readBatch)

	for {
		n, err := r.Read(buf)
		if err != nil {
			return err
		}
		if n%size != 0 {
			return fmt.Errorf("input_eventの読み取りが途中で切れました: %dバイト", n)
		}

		batch := events[:n/size]
		if err := binary.Read(bytes.NewReader(buf[:n]), binary.LittleEndian, batch); err != nil {
			return fmt.Errorf("イベントの解析に失敗しました: %w", err)
		}
		for _, ev := range batch {
			fn(ev)
		}
	}
}
