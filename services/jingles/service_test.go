// jingles/service_test.go
package jingles

import (
	"context"
	"strings"
	"testing"
	"time"

	"pomodoro-go/bus"
	"pomodoro-go/platform"
	"pomodoro-go/types"
)

type rig struct {
	ser  *platform.SimSerial
	sub  *bus.Subscription
	stop func()
}

func newRig(t *testing.T) *rig {
	t.Helper()
	b := bus.NewBus(16)
	ser := platform.NewSimSerial()
	svc := NewService(ser)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if err := svc.Start(ctx, b.NewConnection("jingles")); err != nil {
		t.Fatal(err)
	}

	sub := b.NewConnection("test").Subscribe(bus.T("jingle", "+", "+"))
	return &rig{ser: ser, sub: sub, stop: cancel}
}

// waitOutput polls the serial output until it contains want.
func (r *rig) waitOutput(t *testing.T, want string) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(r.ser.Output(), want) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("serial output %q, want %q", r.ser.Output(), want)
}

func TestJingles_SetPublishesRetained(t *testing.T) {
	r := newRig(t)

	r.ser.Feed("set 1 study E5:0:100,B4:200:300\n")
	r.waitOutput(t, "ok 500\n")

	select {
	case msg := <-r.sub.Channel():
		if len(msg.Topic) != 3 || msg.Topic[1] != 1 || msg.Topic[2] != "study" {
			t.Fatalf("topic = %#v", msg.Topic)
		}
		j, ok := msg.Payload.(types.JingleText)
		if !ok {
			t.Fatalf("payload = %#v", msg.Payload)
		}
		if j.Slot != 1 || j.Cue != "study" || j.Text != "E5:0:100,B4:200:300" {
			t.Fatalf("jingle = %+v", j)
		}
		if !msg.Retained {
			t.Fatal("jingle message not retained")
		}
	case <-time.After(time.Second):
		t.Fatal("no jingle message published")
	}
}

func TestJingles_SplitLinesAndCRLF(t *testing.T) {
	r := newRig(t)

	// Arbitrary chunking on the wire must not split commands.
	r.ser.Feed("set 0 boo")
	r.ser.Feed("t A4:0:100\r\n")
	r.waitOutput(t, "ok 100\n")
}

func TestJingles_Errors(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{"get 0 boot A4:0:100", "err invalid_params"},
		{"set 9 boot A4:0:100", "err unknown_slot"},
		{"set x boot A4:0:100", "err unknown_slot"},
		{"set 0 lunch A4:0:100", "err unknown_cue"},
		{"set 0 boot", "err invalid_params"},
		{"set 0 boot broken", "err malformed_token"},
	}
	for _, c := range cases {
		r := newRig(t)
		r.ser.Feed(c.line + "\n")
		r.waitOutput(t, c.want)

		select {
		case msg := <-r.sub.Channel():
			t.Fatalf("%q published %#v", c.line, msg.Payload)
		default:
		}
		r.stop()
	}
}

func TestJingles_NoPortIsNotFatal(t *testing.T) {
	b := bus.NewBus(4)
	svc := NewService(nil)
	if err := svc.Start(context.Background(), b.NewConnection("jingles")); err != nil {
		t.Fatalf("nil port: %v", err)
	}
}
