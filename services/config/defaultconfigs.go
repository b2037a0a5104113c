package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Populate embeddedConfigs at build time (e.g. via code generation) or
// manually during development.
// Key: device ID (same value placed in ctx under CtxDeviceKey)
// Val: raw JSON bytes for that device
// -----------------------------------------------------------------------------

const cfgPomodoro = `{
  "timer": {
      "study_minutes": 25,
      "rest_minutes": 5,
      "step_minutes": 5,
      "max_minutes": 95,
      "blink_ms": 500,
      "tick_ms": 2,
      "debounce_ticks": 8
  },
  "heartbeat": {
      "interval": 30
  }
}`

var embeddedConfigs = map[string][]byte{
	"pomodoro": []byte(cfgPomodoro),
}
