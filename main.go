package main

import (
	"context"
	"time"

	"pomodoro-go/app"
	"pomodoro-go/bus"
	"pomodoro-go/platform"
	"pomodoro-go/services/config"
	"pomodoro-go/services/heartbeat"
	"pomodoro-go/services/jingles"
	"pomodoro-go/timer"
)

const deviceID = "pomodoro"

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, deviceID)

	b := bus.NewBus(16)

	cfg, err := config.Load(deviceID)
	if err != nil {
		println("[main] config:", err.Error())
	}
	config.NewConfigService().Start(ctx, b.NewConnection("config"))

	board := platform.NewBoard(platform.DefaultPinMap)
	slot := platform.ReadJingleSlot(board)
	println("[main] jingle slot", slot)

	hb := &heartbeat.Service{}
	_ = hb.Start(ctx, b.NewConnection("heartbeat"))

	jl := jingles.NewService(board.Serial)
	_ = jl.Start(ctx, b.NewConnection("jingles"))

	a := app.New(app.Config{
		TickMs:        cfg.Timer.TickMs,
		DebounceTicks: cfg.Timer.DebounceTicks,
		Timer: timer.Config{
			StudyMinutes: cfg.Timer.StudyMinutes,
			RestMinutes:  cfg.Timer.RestMinutes,
			StepMinutes:  cfg.Timer.StepMinutes,
			MaxMinutes:   cfg.Timer.MaxMinutes,
			BlinkMs:      uint32(cfg.Timer.BlinkMs),
			JingleSlot:   slot,
		},
	}, board, b.NewConnection("app"))

	a.Run(ctx)
}
