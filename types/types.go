// types/types.go
package types

// Mode is the operating state of the countdown state machine.
type Mode uint8

const (
	ModeConfig Mode = iota
	ModeStudy
	ModeRest
)

func (m Mode) String() string {
	switch m {
	case ModeConfig:
		return "config"
	case ModeStudy:
		return "study"
	case ModeRest:
		return "rest"
	default:
		return "unknown"
	}
}

// TimerSnapshot is the retained timer/state payload.
type TimerSnapshot struct {
	Mode         Mode  `json:"mode"`
	Paused       bool  `json:"paused"`
	StudySeconds int   `json:"study_seconds"`
	RestSeconds  int   `json:"rest_seconds"`
	Remaining    int   `json:"remaining"`
	JingleSlot   int   `json:"jingle_slot"`
	TSms         int64 `json:"ts_ms"`
}

// ButtonEvent is published on timer/button/<name> for each debounced edge.
type ButtonEvent struct {
	Button  string `json:"button"`
	Pressed bool   `json:"pressed"`
	TSms    int64  `json:"ts_ms"`
}

// JingleText carries raw melody notation for one slot/cue pair.
// Published retained on jingle/<slot>/<cue> by the UART loader.
type JingleText struct {
	Slot int    `json:"slot"`
	Cue  string `json:"cue"`
	Text string `json:"text"`
}

// TimerConfig is the config/timer section of the embedded device config.
type TimerConfig struct {
	StudyMinutes  int `json:"study_minutes"`
	RestMinutes   int `json:"rest_minutes"`
	StepMinutes   int `json:"step_minutes"`
	MaxMinutes    int `json:"max_minutes"`
	BlinkMs       int `json:"blink_ms"`
	TickMs        int `json:"tick_ms"`
	DebounceTicks int `json:"debounce_ticks"`
}

// HeartbeatConfig is the config/heartbeat section.
type HeartbeatConfig struct {
	Interval int `json:"interval"` // seconds
}

// DeviceConfig is the whole embedded config document for one device ID.
type DeviceConfig struct {
	Timer     TimerConfig     `json:"timer"`
	Heartbeat HeartbeatConfig `json:"heartbeat"`
}
