// bus/bus_test.go
package bus

import (
	"testing"
	"time"
)

func expectOneOf(t *testing.T, s *Subscription, want any) {
	t.Helper()
	select {
	case got := <-s.Channel():
		if got.Payload != want {
			t.Errorf("expected payload %v, got %v", want, got.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("timeout waiting for %v", want)
	}
}

func expectNoMessage(t *testing.T, s *Subscription) {
	t.Helper()
	select {
	case got := <-s.Channel():
		t.Errorf("unexpected message: %v", got.Payload)
	default:
	}
}

func TestBasicPubSub(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(T("timer", "state"))

	conn.Publish(conn.NewMessage(T("timer", "state"), "hello", false))
	expectOneOf(t, sub, "hello")
}

func TestRetainedMessage(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")

	conn.Publish(conn.NewMessage(T("config", "timer"), "persist", true))

	sub := conn.Subscribe(T("config", "timer"))
	expectOneOf(t, sub, "persist")
}

func TestRetainedClear(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")

	conn.Publish(conn.NewMessage(T("config", "timer"), "persist", true))
	conn.Publish(conn.NewMessage(T("config", "timer"), nil, true))

	sub := conn.Subscribe(T("config", "timer"))
	expectNoMessage(t, sub)
}

func TestIntTokens(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(T("jingle", 2, "study"))
	conn.Publish(conn.NewMessage(T("jingle", 2, "study"), "m", false))
	expectOneOf(t, sub, "m")

	// Same digits as a string token must not match.
	conn.Publish(conn.NewMessage(T("jingle", "2", "study"), "s", false))
	expectNoMessage(t, sub)
}

// -----------------------------------------------------------------------------
// Wildcards
// -----------------------------------------------------------------------------

func TestWildcard_SingleLevel(t *testing.T) {
	b := NewBus(16)
	c := b.NewConnection("test")

	s1 := c.Subscribe(T("timer", "+", "rest"))
	s2 := c.Subscribe(T("timer", "+", "+"))
	s3 := c.Subscribe(T("timer", "event", "+"))
	sNo := c.Subscribe(T("timer", "+", "study"))

	c.Publish(b.NewMessage(T("timer", "event", "rest"), "m1", false))

	expectOneOf(t, s1, "m1")
	expectOneOf(t, s2, "m1")
	expectOneOf(t, s3, "m1")
	expectNoMessage(t, sNo)

	c.Publish(b.NewMessage(T("timer", "x", "y"), "m2", false))

	expectOneOf(t, s2, "m2")
	expectNoMessage(t, s1)
	expectNoMessage(t, s3)
	expectNoMessage(t, sNo)

	c.Publish(b.NewMessage(T("timer", "rest"), "m3", false))
	expectNoMessage(t, s1)
	expectNoMessage(t, s2)
	expectNoMessage(t, s3)
	expectNoMessage(t, sNo)
}

func TestWildcard_MultiLevel(t *testing.T) {
	b := NewBus(16)
	c := b.NewConnection("test")

	sAHash := c.Subscribe(T("jingle", "#"))
	sHash := c.Subscribe(T("#"))
	sABHash := c.Subscribe(T("jingle", 1, "#"))
	sAExact := c.Subscribe(T("jingle"))

	c.Publish(b.NewMessage(T("jingle"), "p1", false))
	expectOneOf(t, sAHash, "p1")
	expectOneOf(t, sHash, "p1")
	expectOneOf(t, sAExact, "p1")
	expectNoMessage(t, sABHash)

	c.Publish(b.NewMessage(T("jingle", 1), "p2", false))
	expectOneOf(t, sAHash, "p2")
	expectOneOf(t, sHash, "p2")
	expectOneOf(t, sABHash, "p2")
	expectNoMessage(t, sAExact)

	c.Publish(b.NewMessage(T("jingle", 1, "boot"), "p3", false))
	expectOneOf(t, sAHash, "p3")
	expectOneOf(t, sHash, "p3")
	expectOneOf(t, sABHash, "p3")
	expectNoMessage(t, sAExact)
}

func TestWildcard_RetainedDelivery(t *testing.T) {
	b := NewBus(32)
	c := b.NewConnection("test")

	c.Publish(b.NewMessage(T("jingle", 0, "boot"), "r0", true))
	c.Publish(b.NewMessage(T("jingle", 1, "boot"), "r1", true))
	c.Publish(b.NewMessage(T("jingle", 1, "rest"), "r2", true))

	sub := c.Subscribe(T("jingle", "+", "boot"))
	got := map[any]bool{}
	for i := 0; i < 2; i++ {
		select {
		case m := <-sub.Channel():
			got[m.Payload] = true
		case <-time.After(100 * time.Millisecond):
			t.Fatal("timeout waiting for retained")
		}
	}
	if !got["r0"] || !got["r1"] {
		t.Errorf("expected r0+r1, got %v", got)
	}
	expectNoMessage(t, sub)

	all := c.Subscribe(T("jingle", "#"))
	for i := 0; i < 3; i++ {
		select {
		case <-all.Channel():
		case <-time.After(100 * time.Millisecond):
			t.Fatal("timeout waiting for retained under #")
		}
	}
	expectNoMessage(t, all)
}

func TestReply(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("test")

	replies := c.Subscribe(T("reply", "jingles", 1))

	req := c.NewMessage(T("jingle", "set"), "payload", false)
	req.ReplyTo = T("reply", "jingles", 1)
	c.Publish(req)

	c.Reply(req, "ok", false)
	expectOneOf(t, replies, "ok")
}

func TestDropOldestWhenFull(t *testing.T) {
	b := NewBus(1)
	c := b.NewConnection("test")

	sub := c.Subscribe(T("timer", "state"))
	c.Publish(b.NewMessage(T("timer", "state"), "old", false))
	c.Publish(b.NewMessage(T("timer", "state"), "new", false))

	expectOneOf(t, sub, "new")
	expectNoMessage(t, sub)
}

func TestUnsubscribe(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("test")

	sub := c.Subscribe(T("timer", "state"))
	sub.Unsubscribe()

	c.Publish(b.NewMessage(T("timer", "state"), "m", false))
	if _, ok := <-sub.Channel(); ok {
		t.Error("expected closed channel after unsubscribe")
	}
}
