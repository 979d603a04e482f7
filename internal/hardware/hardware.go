// Package hardware exposes the field controller: its last sensor readings and
// the remote control switch an expert sets.
package hardware

import (
	"fmt"
	"math"
	"time"
)

// DeviceID is the row holding the single controller.
const DeviceID = 1

// RemoteControl is the switch position: reverse, stop, or forward.
type RemoteControl int

const (
	Reverse RemoteControl = -1
	Stop    RemoteControl = 0
	Forward RemoteControl = 1
)

// Valid reports whether c is a known position.
func (c RemoteControl) Valid() bool {
	return c >= Reverse && c <= Forward
}

// Hardware is the controller state.
type Hardware struct {
	ID            int           `json:"id"`
	Humidity      float64       `json:"humidity"`
	Temperature   float64       `json:"temperature"`
	RemoteControl RemoteControl `json:"remote_control"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// RemoteCommand sets the switch.
type RemoteCommand struct {
	RemoteControl *RemoteControl `json:"remote_control"`
}

// Validate requires a position in {-1, 0, 1}.
func (c RemoteCommand) Validate() error {
	if c.RemoteControl == nil {
		return fmt.Errorf("%w: remote_control is required", ErrInvalidInput)
	}
	if !c.RemoteControl.Valid() {
		return fmt.Errorf("%w: remote_control must be -1, 0, or 1", ErrInvalidInput)
	}
	return nil
}

// ReadingsCommand records sensor values reported by the device.
type ReadingsCommand struct {
	Humidity    float64 `json:"humidity"`
	Temperature float64 `json:"temperature"`
}

// Validate checks the readings are physically plausible.
func (c ReadingsCommand) Validate() error {
	switch {
	case math.IsNaN(c.Humidity) || c.Humidity < 0 || c.Humidity > 100:
		return fmt.Errorf("%w: humidity must be between 0 and 100", ErrInvalidInput)
	case math.IsNaN(c.Temperature) || c.Temperature < -273.15:
		return fmt.Errorf("%w: temperature below absolute zero", ErrInvalidInput)
	}
	return nil
}
