package touch

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DeviceEventType はデバイスイベントの種類を表す
type DeviceEventType int

const (
	DeviceAdded DeviceEventType = iota
	DeviceRemoved
)

// DeviceEvent はデバイスの変更イベントを表す
type DeviceEvent struct {
	Type   DeviceEventType
	Device Device
}

// DeviceCallback はデバイスイベント発生時に呼び出されるコールバック関数の型
type DeviceCallback func(event DeviceEvent)

// ファイルシステムイベントをまとめる時間
const eventDebounceTime = 500 * time.Millisecond

// Monitor はタッチデバイスの接続状態を監視する構造体
type Monitor struct {
	watcher   *fsnotify.Watcher
	scan      func() ([]Device, error)
	callbacks []DeviceCallback
	devices   map[string]Device // パスをキーにしたデバイスマップ
	mutex     sync.RWMutex
	stopChan  chan struct{}
	isRunning bool
}

// NewMonitor は新しいMonitorを作成する
func NewMonitor() (*Monitor, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	m := newMonitor(ScanDevices)
	m.watcher = watcher
	return m, nil
}

func newMonitor(scan func() ([]Device, error)) *Monitor {
	return &Monitor{
		scan:     scan,
		devices:  make(map[string]Device),
		stopChan: make(chan struct{}),
	}
}

// Start はデバイスの監視を開始する
func (m *Monitor) Start() error {
	if m.isRunning {
		return nil
	}

	if err := m.watcher.Add(inputDir); err != nil {
		return err
	}
	log.Printf("ディレクトリ監視を開始: %s", inputDir)

	m.isRunning = true
	m.Rescan()

	go m.watchEvents()
	return nil
}

// Stop はデバイスの監視を停止する
func (m *Monitor) Stop() {
	if !m.isRunning {
		return
	}

	close(m.stopChan)
	m.watcher.Close()
	m.isRunning = false
}

// RegisterCallback はデバイスイベントのコールバック関数を登録する
func (m *Monitor) RegisterCallback(callback DeviceCallback) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.callbacks = append(m.callbacks, callback)
}

// Rescan はデバイス一覧を再スキャンする
func (m *Monitor) Rescan() {
	devices, err := m.scan()
	if err != nil {
		log.Printf("デバイス再スキャンに失敗しました: %v", err)
		return
	}
	m.updateDeviceList(devices)
}

// Devices は現在接続されているデバイスのスナップショットを返す
func (m *Monitor) Devices() []Device {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	devices := make([]Device, 0, len(m.devices))
	for _, dev := range m.devices {
		devices = append(devices, dev)
	}
	sortDevices(devices)
	return devices
}

// updateDeviceList は現在のデバイス一覧を更新し、変更があれば通知する
func (m *Monitor) updateDeviceList(newDevices []Device) {
	var events []DeviceEvent

	m.mutex.Lock()
	seen := make(map[string]bool)
	for _, dev := range newDevices {
		seen[dev.Path] = true
		old, exists := m.devices[dev.Path]
		if exists && old == dev {
			continue
		}
		if exists {
			// 同じパスに別のデバイスが接続された
			events = append(events, DeviceEvent{Type: DeviceRemoved, Device: old})
		}
		m.devices[dev.Path] = dev
		events = append(events, DeviceEvent{Type: DeviceAdded, Device: dev})
	}
	for path, dev := range m.devices {
		if !seen[path] {
			delete(m.devices, path)
			events = append(events, DeviceEvent{Type: DeviceRemoved, Device: dev})
		}
	}
	callbacks := append([]DeviceCallback(nil), m.callbacks...)
	m.mutex.Unlock()

	for _, ev := range events {
		if ev.Type == DeviceAdded {
			log.Printf("デバイス接続: %s (%s)", ev.Device.Name, ev.Device.Path)
		} else {
			log.Printf("デバイス切断: %s (%s)", ev.Device.Name, ev.Device.Path)
		}
		for _, cb := range callbacks {
			cb(ev)
		}
	}
}

// watchEvents はfsnotifyのイベントを監視する
func (m *Monitor) watchEvents() {
	// 接続直後はイベントが連続するのでまとめて処理する
	eventTimer := time.NewTimer(eventDebounceTime)
	eventTimer.Stop()
	pendingRescan := false

	for {
		select {
		case <-m.stopChan:
			return

		case <-eventTimer.C:
			if pendingRescan {
				pendingRescan = false
				m.Rescan()
			}

		case ev, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if !strings.Contains(ev.Name, "event") {
				continue
			}
			if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Chmod) {
				if !pendingRescan {
					pendingRescan = true
					eventTimer.Reset(eventDebounceTime)
				}
			}

		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("ファイルシステム監視エラー: %v", err)
		}
	}
}
