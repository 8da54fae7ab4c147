package touch

import (
	"fmt"
	"log"
	"sync"

	"github.com/char5742/tspress/internal/calib"
)

// Service は選択したタッチデバイスを読み取り、抜き差しに追従する
type Service struct {
	preferred string
	grab      bool
	sink      func(calib.Event)
	open      func(dev Device, grab bool) (Source, error)
	monitor   *Monitor
	source    Source
	current   *Device
	target    *calib.Size
	mutex     sync.Mutex
	running   bool
}

// NewService は新しいサービスを作成する
// sinkは読み取りゴルーチンから呼ばれる
func NewService(preferred string, grab bool, sink func(calib.Event)) *Service {
	return &Service{
		preferred: preferred,
		grab:      grab,
		sink:      sink,
		open: func(dev Device, grab bool) (Source, error) {
			return OpenReader(dev, grab)
		},
	}
}

// Start はデバイスの監視と読み取りを開始する
// デバイスが見つからなくてもエラーにはせず、接続を待つ
func (s *Service) Start() error {
	s.mutex.Lock()
	if s.running {
		s.mutex.Unlock()
		return fmt.Errorf("サービスは既に実行中です")
	}
	s.running = true
	s.mutex.Unlock()

	monitor, err := NewMonitor()
	if err != nil {
		log.Printf("デバイスモニターの初期化に失敗しました: %v", err)
		return s.startWithoutMonitor()
	}

	s.monitor = monitor
	monitor.RegisterCallback(s.onDeviceEvent)
	if err := monitor.Start(); err != nil {
		log.Printf("デバイスモニターの起動に失敗しました: %v", err)
		monitor.watcher.Close()
		s.monitor = nil
		return s.startWithoutMonitor()
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.current == nil {
		log.Println("タッチデバイスが見つかりませんでした。接続を待ちます")
	}
	return nil
}

// startWithoutMonitor は抜き差しを監視せずに一度だけデバイスを選ぶ
func (s *Service) startWithoutMonitor() error {
	devices, err := ScanDevices()
	if err != nil {
		return fmt.Errorf("デバイス一覧の取得に失敗しました: %w", err)
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.selectLocked(devices)
	return nil
}

// Stop はサービスを停止する
func (s *Service) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.running {
		return
	}
	s.running = false

	if s.monitor != nil {
		s.monitor.Stop()
		s.monitor = nil
	}
	s.closeLocked()
}

// Current は読み取り中のデバイスを返す
func (s *Service) Current() *Device {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.current == nil {
		return nil
	}
	dev := *s.current
	return &dev
}

// SetTarget はタッチ座標の変換先の大きさを設定する
// 後から開いたデバイスにも適用される
func (s *Service) SetTarget(size calib.Size) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.target = &size
	if s.source != nil {
		s.source.SetTarget(size)
	}
}

func (s *Service) onDeviceEvent(ev DeviceEvent) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.running {
		return
	}

	switch ev.Type {
	case DeviceRemoved:
		if s.current != nil && s.current.Path == ev.Device.Path {
			log.Printf("読み取り中のデバイスが切断されました: %s", ev.Device.Name)
			s.closeLocked()
		}
	case DeviceAdded:
		if s.current == nil {
			s.selectLocked(s.monitor.Devices())
			return
		}
		// 優先デバイスが後から接続された場合は切り替える
		if s.preferred != "" && !s.isPreferred(*s.current) && s.isPreferred(ev.Device) {
			s.closeLocked()
			s.openLocked(ev.Device)
		}
	}
}

func (s *Service) isPreferred(dev Device) bool {
	return dev.Name == s.preferred || dev.Path == s.preferred
}

func (s *Service) selectLocked(devices []Device) {
	dev := SelectDevice(devices, s.preferred)
	if dev == nil {
		return
	}
	s.openLocked(*dev)
}

func (s *Service) openLocked(dev Device) {
	src, err := s.open(dev, s.grab)
	if err != nil {
		log.Printf("タッチデバイスのオープンに失敗しました: %v", err)
		return
	}

	log.Printf("使用するタッチデバイス: %s (%s, %s)", dev.Name, dev.Path, dev.Type)
	if s.target != nil {
		src.SetTarget(*s.target)
	}
	s.source = src
	s.current = &dev

	go func() {
		if err := src.Run(s.sink); err != nil {
			log.Printf("タッチデバイスの読み取りに失敗しました[path=%s]: %v", dev.Path, err)
		}
		s.mutex.Lock()
		defer s.mutex.Unlock()
		if s.source == src {
			_ = src.Close()
			s.source = nil
			s.current = nil
		}
	}()
}

func (s *Service) closeLocked() {
	if s.source != nil {
		_ = s.source.Close()
		s.source = nil
	}
	s.current = nil
}
