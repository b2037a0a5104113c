// Package heartbeat publishes a periodic liveness snapshot while the loop
// runs, mainly so a serial console can tell a wedged board from a silent one.
package heartbeat

import (
	"context"
	"time"

	"pomodoro-go/bus"
	"pomodoro-go/types"
	"pomodoro-go/x/timex"
)

var (
	topicConfigHeartbeat = bus.T("config", "heartbeat")
	topicStatusHeartbeat = bus.T("status", "heartbeat")
)

// Status is the retained status/heartbeat payload.
type Status struct {
	UptimeS int64 `json:"uptime_s"`
	TSms    int64 `json:"ts_ms"`
}

type Service struct {
	started int64
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigHeartbeat)
	defer conn.Unsubscribe(cfgSub)

	tick := time.NewTicker(30 * time.Second)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			println("[heartbeat] stopping")
			return
		case <-tick.C:
			now := timex.NowMs()
			conn.Publish(conn.NewMessage(topicStatusHeartbeat, Status{
				UptimeS: (now - s.started) / 1000,
				TSms:    now,
			}, true))
		case msg := <-cfgSub.Channel():
			if hc, ok := msg.Payload.(types.HeartbeatConfig); ok && hc.Interval > 0 {
				tick.Reset(time.Duration(hc.Interval) * time.Second)
			}
		}
	}
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	s.started = timex.NowMs()
	go s.serviceLoop(ctx, conn)
	return nil
}
