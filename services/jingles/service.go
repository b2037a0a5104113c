// Package jingles serves the melody customization port. Lines arrive over
// the UART as `set <slot> <boot|study|rest> <notation>`; valid melodies are
// published retained on jingle/<slot>/<cue> for the app to pick up.
package jingles

import (
	"context"
	"strings"

	"pomodoro-go/bus"
	"pomodoro-go/errcode"
	"pomodoro-go/melody"
	"pomodoro-go/platform"
	"pomodoro-go/types"
	"pomodoro-go/x/conv"
	"pomodoro-go/x/strconvx"
)

const (
	jinglePrefix = "jingle"
	maxLine      = 512
)

type Service struct {
	port platform.SerialPort
}

func NewService(port platform.SerialPort) *Service {
	return &Service{port: port}
}

// Start launches the line reader. A board without the port is not an error;
// customization is simply unavailable.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	if s.port == nil {
		println("[jingles] no serial port, customization disabled")
		return nil
	}
	go s.serviceLoop(ctx, conn)
	return nil
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	buf := make([]byte, 64)
	line := make([]byte, 0, maxLine)
	for {
		n, err := s.port.RecvSomeContext(ctx, buf)
		if err != nil {
			return
		}
		for _, c := range buf[:n] {
			if c == '\n' || c == '\r' {
				if len(line) > 0 {
					s.handleLine(conn, string(line))
					line = line[:0]
				}
				continue
			}
			if len(line) < maxLine {
				line = append(line, c)
			}
		}
	}
}

func (s *Service) handleLine(conn *bus.Connection, line string) {
	totalMs, err := s.apply(conn, line)
	if err != nil {
		s.respond("err " + string(errcode.Of(err)))
		return
	}
	var buf [12]byte
	s.respond("ok " + string(conv.Itoa(buf[:], int64(totalMs))))
}

// apply parses and validates one command line, returning the decoded melody
// length in ms. The melody text is decoded here so a bad notation is rejected
// at the port instead of silently corrupting the table.
func (s *Service) apply(conn *bus.Connection, line string) (uint32, error) {
	verb, rest, _ := strings.Cut(line, " ")
	if verb != "set" {
		return 0, &errcode.E{C: errcode.InvalidParams, Op: "jingles.apply", Msg: verb}
	}
	slotStr, rest, _ := strings.Cut(rest, " ")
	slot, err := strconvx.Atoi(slotStr)
	if err != nil || slot < 0 || slot >= melody.NumSlots {
		return 0, &errcode.E{C: errcode.UnknownSlot, Op: "jingles.apply", Msg: slotStr}
	}
	cueStr, text, _ := strings.Cut(rest, " ")
	cue, err := melody.ParseCue(cueStr)
	if err != nil {
		return 0, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, &errcode.E{C: errcode.InvalidParams, Op: "jingles.apply", Msg: "empty melody"}
	}
	m, err := melody.Decode(text)
	if err != nil {
		return 0, err
	}

	conn.Publish(conn.NewMessage(
		bus.T(jinglePrefix, slot, cue.String()),
		types.JingleText{Slot: slot, Cue: cue.String(), Text: text},
		true,
	))
	return m.TotalMs(), nil
}

func (s *Service) respond(msg string) {
	_, _ = s.port.Write([]byte(msg + "\n"))
}
