package capture

import (
	"errors"
	"testing"
)

func TestNewCamera(t *testing.T) {
	tests := []struct {
		name     string
		deviceID int
		tuning   Tuning
	}{
		{
			name:     "default device",
			deviceID: 0,
		},
		{
			name:     "device 1 with tuning",
			deviceID: 1,
			tuning:   Tuning{Exposure: -3, Gain: 100, Brightness: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera(tt.deviceID, tt.tuning)

			if cam == nil {
				t.Fatal("NewCamera returned nil")
			}

			// Camera should not be running initially
			if cam.IsOpen() {
				t.Error("camera should not be running initially")
			}
		})
	}
}

func TestCamera_ReadFrameNotOpen(t *testing.T) {
	cam := NewCamera(0, Tuning{})

	_, err := cam.ReadFrame()
	if !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("ReadFrame() error = %v, want %v", err, ErrCameraNotOpen)
	}
}

func TestCamera_CloseWithoutOpen(t *testing.T) {
	cam := NewCamera(0, Tuning{})

	if err := cam.Close(); err != nil {
		t.Errorf("Close() on unopened camera error = %v, want nil", err)
	}

	if cam.IsOpen() {
		t.Error("camera should not be open after Close")
	}
}
