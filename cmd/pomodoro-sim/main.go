//go:build !rp2040 && !rp2350

// Command pomodoro-sim drives the firmware loop against the simulated board
// with virtual time. Useful for poking at the state machine without flashing:
//
//	$ go run ./cmd/pomodoro-sim
//	> press confirm
//	> press confirm
//	> run 60000
//	> show
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/shlex"

	"pomodoro-go/app"
	"pomodoro-go/bus"
	"pomodoro-go/platform"
	"pomodoro-go/services/jingles"
	"pomodoro-go/timer"
	"pomodoro-go/types"
)

const stepMs = 2

type sim struct {
	board *platform.SimBoard
	app   *app.App
	sub   *bus.Subscription
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := bus.NewBus(16)
	board := platform.NewSimBoard(platform.DefaultPinMap)

	s := &sim{board: board}
	s.app = app.New(app.Config{Timer: timer.Config{JingleSlot: platform.ReadJingleSlot(board.Board())}}, board.Board(), b.NewConnection("app"))

	conn := b.NewConnection("sim")
	s.sub = conn.Subscribe(bus.T("jingle", "+", "+"))

	jl := jingles.NewService(board.Ser)
	_ = jl.Start(ctx, b.NewConnection("jingles"))

	s.app.Boot()

	in := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for in.Scan() {
		args, err := shlex.Split(in.Text())
		if err != nil {
			fmt.Println("parse:", err)
		} else if len(args) > 0 && !s.exec(args) {
			return
		}
		fmt.Print("> ")
	}
}

func (s *sim) exec(args []string) bool {
	switch args[0] {
	case "quit", "exit":
		return false
	case "press":
		if pin, ok := s.buttonPin(args); ok {
			s.board.SetButton(pin, true)
			s.run(30)
			s.board.SetButton(pin, false)
			s.run(30)
		}
	case "hold":
		if pin, ok := s.buttonPin(args); ok {
			s.board.SetButton(pin, true)
		}
	case "release":
		if pin, ok := s.buttonPin(args); ok {
			s.board.SetButton(pin, false)
		}
	case "jumper":
		if len(args) == 2 {
			n, _ := strconv.Atoi(args[1])
			s.board.FitJumper(n - 1)
			fmt.Println("jumper fitted; takes effect on restart")
		}
	case "run":
		if len(args) == 2 {
			ms, err := strconv.Atoi(args[1])
			if err != nil || ms < 0 {
				fmt.Println("usage: run <ms>")
				break
			}
			s.run(ms)
		}
	case "feed":
		if len(args) >= 2 {
			line := args[1]
			for _, a := range args[2:] {
				line += " " + a
			}
			s.board.Ser.Feed(line + "\n")
			time.Sleep(20 * time.Millisecond) // let the reader goroutine catch up
			s.run(stepMs)
			fmt.Print(s.board.Ser.Output())
		}
	case "show":
		s.show()
	default:
		fmt.Println("commands: press|hold|release <up|down|confirm|reset>, jumper <1-3>, run <ms>, feed <line>, show, quit")
	}
	return true
}

// run advances virtual time, draining jingle overrides between ticks.
func (s *sim) run(ms int) {
	for t := 0; t < ms; t += stepMs {
		for {
			select {
			case msg := <-s.sub.Channel():
				if j, ok := msg.Payload.(types.JingleText); ok {
					_ = s.app.ApplyJingle(j)
				}
				continue
			default:
			}
			break
		}
		s.app.Step(stepMs)
	}
}

func (s *sim) show() {
	m := s.app.Machine()
	r, g, b := s.board.Led.Color()
	fmt.Printf("display %q  buzzer %d Hz  led #%02x%02x%02x\n", s.app.Display().Text(), s.board.Buzz.CurrentHz(), r, g, b)
	fmt.Printf("mode %s  remaining %ds  paused %v\n", m.Mode(), m.Remaining(), m.Paused())
}

func (s *sim) buttonPin(args []string) (int, bool) {
	if len(args) != 2 {
		fmt.Println("usage:", args[0], "<up|down|confirm|reset>")
		return 0, false
	}
	pm := platform.DefaultPinMap
	switch args[1] {
	case "up":
		return pm.BtnUp, true
	case "down":
		return pm.BtnDown, true
	case "confirm":
		return pm.BtnConfirm, true
	case "reset":
		return pm.BtnReset, true
	}
	fmt.Println("unknown button:", args[1])
	return 0, false
}
