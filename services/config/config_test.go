// config/config_test.go
package config

import (
	"context"
	"testing"
	"time"

	"pomodoro-go/bus"
	"pomodoro-go/types"
)

func TestLoad_Typed(t *testing.T) {
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(device string) ([]byte, bool) {
		if device != "pomodoro" {
			return nil, false
		}
		return []byte(`{
			"timer": {"study_minutes": 30, "rest_minutes": 10, "blink_ms": 250},
			"heartbeat": {"interval": 5}
		}`), true
	}
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	cfg, err := Load("pomodoro")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timer.StudyMinutes != 30 || cfg.Timer.RestMinutes != 10 || cfg.Timer.BlinkMs != 250 {
		t.Fatalf("timer section = %+v", cfg.Timer)
	}
	if cfg.Heartbeat.Interval != 5 {
		t.Fatalf("heartbeat section = %+v", cfg.Heartbeat)
	}
}

func TestLoad_DefaultDeviceParses(t *testing.T) {
	cfg, err := Load("pomodoro")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timer.StudyMinutes != 25 || cfg.Timer.TickMs != 2 {
		t.Fatalf("embedded defaults = %+v", cfg.Timer)
	}
}

func TestConfig_PublishSections_Retained(t *testing.T) {
	b := bus.NewBus(16)
	conn := b.NewConnection("test-config")
	svc := NewConfigService()

	ctx := context.WithValue(context.Background(), CtxDeviceKey, "pomodoro")
	svc.Start(ctx, conn)

	// Retained messages reach a late subscriber.
	sub := conn.Subscribe(bus.T(configPrefix, "#"))

	got := map[string]any{}
	deadline := time.Now().Add(600 * time.Millisecond)
	for len(got) < 2 && time.Now().Before(deadline) {
		select {
		case m := <-sub.Channel():
			if len(m.Topic) < 2 {
				t.Fatalf("unexpected topic: %#v", m.Topic)
			}
			key, ok := m.Topic[1].(string)
			if !ok {
				t.Fatalf("topic[1] type %T, want string", m.Topic[1])
			}
			got[key] = m.Payload
		case <-time.After(10 * time.Millisecond):
		}
	}

	tc, ok := got["timer"].(types.TimerConfig)
	if !ok {
		t.Fatalf("timer payload = %#v", got["timer"])
	}
	if tc.StudyMinutes != 25 || tc.MaxMinutes != 95 {
		t.Fatalf("timer config = %+v", tc)
	}
	hc, ok := got["heartbeat"].(types.HeartbeatConfig)
	if !ok {
		t.Fatalf("heartbeat payload = %#v", got["heartbeat"])
	}
	if hc.Interval != 30 {
		t.Fatalf("heartbeat config = %+v", hc)
	}
}

func TestConfig_PublishConfig_MissingDevice(t *testing.T) {
	b := bus.NewBus(4)
	conn := b.NewConnection("test-missing-device")
	svc := NewConfigService()

	if err := svc.publishConfig(context.Background(), conn); err == nil {
		t.Fatal("expected error for missing device ID, got nil")
	}
}

func TestConfig_PublishConfig_NoConfigFound(t *testing.T) {
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(device string) ([]byte, bool) { return nil, false }
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	b := bus.NewBus(4)
	conn := b.NewConnection("test-no-config")
	svc := NewConfigService()

	ctx := context.WithValue(context.Background(), CtxDeviceKey, "unknown-device")
	if err := svc.publishConfig(ctx, conn); err == nil {
		t.Fatal("expected error for missing embedded config, got nil")
	}
}
