package touch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonitorUpdateDeviceList(t *testing.T) {
	m := newMonitor(nil)

	var events []DeviceEvent
	m.RegisterCallback(func(ev DeviceEvent) {
		events = append(events, ev)
	})

	m.updateDeviceList([]Device{panel})
	assert.Equal(t, []DeviceEvent{{Type: DeviceAdded, Device: panel}}, events)

	// 変化なし
	events = nil
	m.updateDeviceList([]Device{panel})
	assert.Empty(t, events)

	events = nil
	m.updateDeviceList([]Device{pad})
	assert.ElementsMatch(t, []DeviceEvent{
		{Type: DeviceAdded, Device: pad},
		{Type: DeviceRemoved, Device: panel},
	}, events)
	assert.Equal(t, []Device{pad}, m.Devices())
}

func TestMonitorSamePathReplaced(t *testing.T) {
	m := newMonitor(nil)
	m.updateDeviceList([]Device{panel})

	var events []DeviceEvent
	m.RegisterCallback(func(ev DeviceEvent) {
		events = append(events, ev)
	})

	other := panel
	other.Name = "other panel"
	m.updateDeviceList([]Device{other})

	assert.Equal(t, []DeviceEvent{
		{Type: DeviceRemoved, Device: panel},
		{Type: DeviceAdded, Device: other},
	}, events)
}
