package touch

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/char5742/tspress/internal/calib"
)

// fakeSource はCloseされるまでRunが戻らないSource
type fakeSource struct {
	device Device
	done   chan struct{}
	once   sync.Once
	mutex  sync.Mutex
	target *calib.Size
}

func (f *fakeSource) SetTarget(size calib.Size) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.target = &size
}

func (f *fakeSource) targetSize() *calib.Size {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.target
}

func (f *fakeSource) Run(func(calib.Event)) error {
	<-f.done
	return nil
}

func (f *fakeSource) Close() error {
	f.once.Do(func() { close(f.done) })
	return nil
}

func (f *fakeSource) closed() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

type fakeDevices struct {
	mutex   sync.Mutex
	devices []Device
	opened  []*fakeSource
}

func (f *fakeDevices) scan() ([]Device, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return append([]Device(nil), f.devices...), nil
}

func (f *fakeDevices) set(devices ...Device) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.devices = devices
}

func (f *fakeDevices) open(dev Device, grab bool) (Source, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	src := &fakeSource{device: dev, done: make(chan struct{})}
	f.opened = append(f.opened, src)
	return src, nil
}

func newTestService(t *testing.T, preferred string) (*Service, *fakeDevices) {
	t.Helper()
	fake := &fakeDevices{}
	s := NewService(preferred, false, func(calib.Event) {})
	s.open = fake.open
	s.monitor = newMonitor(fake.scan)
	s.monitor.RegisterCallback(s.onDeviceEvent)
	s.running = true
	t.Cleanup(func() {
		s.mutex.Lock()
		s.closeLocked()
		s.mutex.Unlock()
	})
	return s, fake
}

var (
	panel = Device{Name: "panel", Path: "/dev/input/event4", Type: DeviceTypeMultiTouch}
	pad   = Device{Name: "pad", Path: "/dev/input/event5", Type: DeviceTypeSingleTouch}
)

func TestServiceOpensFirstDevice(t *testing.T) {
	s, fake := newTestService(t, "")
	fake.set(pad, panel)

	s.monitor.Rescan()

	require.NotNil(t, s.Current())
	assert.Equal(t, panel, *s.Current())
	assert.Len(t, fake.opened, 1)
}

func TestServiceDeviceRemovedAndReattached(t *testing.T) {
	s, fake := newTestService(t, "")
	fake.set(panel)
	s.monitor.Rescan()
	require.Len(t, fake.opened, 1)

	fake.set()
	s.monitor.Rescan()
	assert.Nil(t, s.Current())
	assert.True(t, fake.opened[0].closed())

	fake.set(panel)
	s.monitor.Rescan()
	require.NotNil(t, s.Current())
	assert.Equal(t, panel, *s.Current())
	assert.Len(t, fake.opened, 2)
}

func TestServiceSwitchesToPreferredDevice(t *testing.T) {
	s, fake := newTestService(t, "pad")
	fake.set(panel)
	s.monitor.Rescan()
	require.NotNil(t, s.Current())
	assert.Equal(t, panel, *s.Current())

	fake.set(panel, pad)
	s.monitor.Rescan()
	require.NotNil(t, s.Current())
	assert.Equal(t, pad, *s.Current())
	assert.True(t, fake.opened[0].closed())
}

func TestServiceIgnoresOtherRemovals(t *testing.T) {
	s, fake := newTestService(t, "")
	fake.set(panel, pad)
	s.monitor.Rescan()

	fake.set(panel)
	s.monitor.Rescan()
	require.NotNil(t, s.Current())
	assert.Equal(t, panel, *s.Current())
	assert.False(t, fake.opened[0].closed())
}

func TestServiceAppliesTargetToReaders(t *testing.T) {
	s, fake := newTestService(t, "")
	fake.set(panel)
	s.monitor.Rescan()
	require.Len(t, fake.opened, 1)
	assert.Nil(t, fake.opened[0].targetSize())

	s.SetTarget(calib.Size{W: 800, H: 480})
	require.NotNil(t, fake.opened[0].targetSize())
	assert.Equal(t, calib.Size{W: 800, H: 480}, *fake.opened[0].targetSize())

	// 再接続したデバイスにも同じ大きさを使う
	fake.set()
	s.monitor.Rescan()
	fake.set(panel)
	s.monitor.Rescan()
	require.Len(t, fake.opened, 2)
	require.NotNil(t, fake.opened[1].targetSize())
	assert.Equal(t, calib.Size{W: 800, H: 480}, *fake.opened[1].targetSize())
}
