package touch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/char5742/tspress/internal/event"
)

func bits(size int, set ...int) []byte {
	b := make([]byte, size/8+1)
	for _, n := range set {
		b[n/8] |= 1 << (n % 8)
	}
	return b
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		prop   []byte
		abs    []byte
		key    []byte
		want   DeviceType
		wantOK bool
	}{
		{
			name:   "multi-touch panel",
			prop:   bits(event.InputPropMax, event.InputPropDirect),
			abs:    bits(event.AbsMax, event.AbsX, event.AbsY, event.AbsMtSlot, event.AbsMtPositionX, event.AbsMtPositionY),
			key:    bits(event.KeyMax, event.BtnTouch),
			want:   DeviceTypeMultiTouch,
			wantOK: true,
		},
		{
			name:   "resistive panel",
			prop:   bits(event.InputPropMax, event.InputPropDirect),
			abs:    bits(event.AbsMax, event.AbsX, event.AbsY),
			key:    bits(event.KeyMax, event.BtnTouch),
			want:   DeviceTypeSingleTouch,
			wantOK: true,
		},
		{
			name: "touchpad",
			prop: bits(event.InputPropMax, 0x00, 0x02), // INPUT_PROP_POINTER, INPUT_PROP_BUTTONPAD
			abs:  bits(event.AbsMax, event.AbsX, event.AbsY, event.AbsMtSlot, event.AbsMtPositionX, event.AbsMtPositionY),
			key:  bits(event.KeyMax, event.BtnTouch),
		},
		{
			name: "single-touch without direct property",
			prop: bits(event.InputPropMax),
			abs:  bits(event.AbsMax, event.AbsX, event.AbsY),
			key:  bits(event.KeyMax, event.BtnTouch),
		},
		{
			name: "joystick",
			prop: bits(event.InputPropMax),
			abs:  bits(event.AbsMax, event.AbsX, event.AbsY),
			key:  bits(event.KeyMax),
		},
		{
			name: "keyboard",
			prop: bits(event.InputPropMax),
			abs:  bits(event.AbsMax),
			key:  bits(event.KeyMax, 30, 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := classify(tt.prop, tt.abs, tt.key)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTestBitOutOfRange(t *testing.T) {
	assert.False(t, testBit([]byte{0xff}, 8))
	assert.True(t, testBit([]byte{0xff}, 7))
}

func TestCString(t *testing.T) {
	assert.Equal(t, "ADS7846 Touchscreen", cString([]byte("ADS7846 Touchscreen\x00\x00garbage")))
	assert.Equal(t, "abc", cString([]byte("abc")))
}

func TestSortDevices(t *testing.T) {
	devices := []Device{
		{Path: "/dev/input/event10"},
		{Path: "/dev/input/event2"},
		{Path: "/dev/input/event0"},
	}
	sortDevices(devices)
	assert.Equal(t, "/dev/input/event0", devices[0].Path)
	assert.Equal(t, "/dev/input/event2", devices[1].Path)
	assert.Equal(t, "/dev/input/event10", devices[2].Path)
}

func TestSelectDevice(t *testing.T) {
	devices := []Device{
		{Name: "resistive", Path: "/dev/input/event1", Type: DeviceTypeSingleTouch},
		{Name: "capacitive", Path: "/dev/input/event2", Type: DeviceTypeMultiTouch},
		{Name: "pen", Path: "/dev/input/event3", Type: DeviceTypeMultiTouch},
	}

	assert.Equal(t, "capacitive", SelectDevice(devices, "").Name)
	assert.Equal(t, "resistive", SelectDevice(devices, "resistive").Name)
	assert.Equal(t, "pen", SelectDevice(devices, "/dev/input/event3").Name)
	assert.Equal(t, "capacitive", SelectDevice(devices, "missing").Name)
	assert.Equal(t, "resistive", SelectDevice(devices[:1], "").Name)
	assert.Nil(t, SelectDevice(nil, ""))
}

func TestAbsRangeScale(t *testing.T) {
	r := AbsRange{Min: 0, Max: 3999}
	assert.Equal(t, 0, r.Scale(0, 800))
	assert.Equal(t, 780, r.Scale(3900, 800))
	assert.Equal(t, 799, r.Scale(3999, 800))
	// 範囲外の値は端に寄せる
	assert.Equal(t, 799, r.Scale(5000, 800))
	assert.Equal(t, 0, r.Scale(-10, 800))

	offset := AbsRange{Min: 100, Max: 1099}
	assert.Equal(t, 240, offset.Scale(600, 480))

	// 範囲が不明なら生の値
	assert.Equal(t, 3900, AbsRange{}.Scale(3900, 800))
	assert.Equal(t, 3900, r.Scale(3900, 0))
}

func TestSelectDeviceSkipsTouchpad(t *testing.T) {
	prop := bits(event.InputPropMax, 0x00)
	abs := bits(event.AbsMax, event.AbsMtPositionX, event.AbsMtPositionY)
	key := bits(event.KeyMax, event.BtnTouch)

	var devices []Device
	candidates := []struct {
		dev  Device
		prop []byte
	}{
		{Device{Name: "SynPS/2 Synaptics TouchPad", Path: "/dev/input/event5"}, prop},
		{Device{Name: "ILITEK Multi-Touch", Path: "/dev/input/event12"}, bits(event.InputPropMax, event.InputPropDirect)},
	}
	for _, c := range candidates {
		if typ, ok := classify(c.prop, abs, key); ok {
			c.dev.Type = typ
			devices = append(devices, c.dev)
		}
	}

	require.Len(t, devices, 1)
	assert.Equal(t, "ILITEK Multi-Touch", SelectDevice(devices, "").Name)
}
