// Package script replays recorded event streams in place of a live game
// connection. Each account reads <dir>/<name>.jsonl, one JSON object per line.
package script

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/introvert/internal/domain"
	"github.com/bnema/introvert/internal/ports"
	jsoniter "github.com/json-iterator/go"
)

const (
	scriptExt         = ".jsonl"
	stepInventory     = "inventory"
	maxScriptLineSize = 1 << 20
)

var scriptJSON = jsoniter.ConfigCompatibleWithStandardLibrary

type slotLine struct {
	Label domain.StyledText `json:"label"`
}

// step is one scripted event, or an inventory replacement when event is nil.
type step struct {
	event     domain.Event
	inventory []domain.InventorySlot
	repeat    int
}

// parse decodes a script. Blank lines are skipped.
func parse(r io.Reader) ([]step, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxScriptLineSize)

	var steps []step
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		s, err := parseLine(raw)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		steps = append(steps, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	return steps, nil
}

func parseLine(raw []byte) (step, error) {
	var decoded struct {
		Type  string      `json:"type"`
		Text  string      `json:"text"`
		Kind  string      `json:"kind"`
		Count *int        `json:"count"`
		Slots []*slotLine `json:"slots"`
	}
	if err := scriptJSON.Unmarshal(raw, &decoded); err != nil {
		return step{}, fmt.Errorf("decode step: %w", err)
	}

	if decoded.Type == stepInventory {
		slots := make([]domain.InventorySlot, len(decoded.Slots))
		for i, slot := range decoded.Slots {
			if slot != nil {
				slots[i] = domain.LabeledSlot(slot.Label)
			}
		}
		return step{inventory: slots}, nil
	}

	kind, err := domain.ParseEventKind(decoded.Type)
	if err != nil {
		return step{}, err
	}

	s := step{repeat: 1}
	switch kind {
	case domain.EventInit:
		s.event = domain.InitEvent{}
	case domain.EventSpawn:
		s.event = domain.SpawnEvent{}
	case domain.EventChat:
		s.event = domain.ChatEvent{Text: decoded.Text}
	case domain.EventTick:
		s.event = domain.TickEvent{}
		if decoded.Count != nil {
			if *decoded.Count < 1 {
				return step{}, fmt.Errorf("tick count must be positive, got %d", *decoded.Count)
			}
			s.repeat = *decoded.Count
		}
	case domain.EventPacket:
		if decoded.Kind == "" {
			return step{}, errors.New("packet step requires a kind")
		}
		s.event = domain.PacketEvent{Packet: domain.PacketKind(decoded.Kind)}
	case domain.EventDisconnect:
		s.event = domain.DisconnectEvent{}
	}

	return s, nil
}

// Connector opens one scripted session per account and writes every action
// the bot takes to out as "<account>\t<action>" lines.
type Connector struct {
	dir string
	out *lineWriter
}

var _ ports.Connector = (*Connector)(nil)

func NewConnector(dir string, out io.Writer) *Connector {
	return &Connector{dir: dir, out: &lineWriter{w: out}}
}

func (c *Connector) Connect(ctx context.Context, _ string, account domain.AccountIdentity) (ports.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(c.dir, account.Name+scriptExt)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script for %s: %w", account.Name, err)
	}
	defer file.Close()

	steps, err := parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse script %s: %w", path, err)
	}

	return newSession(account.Name, steps, c.out), nil
}

// Session replays steps in order. It is driven by a single agent, the mutex
// only guards against a late Close.
type Session struct {
	account string
	out     *lineWriter

	mu        sync.Mutex
	steps     []step
	remaining int
	inventory []domain.InventorySlot
	hasScreen bool
	closed    bool
}

var _ ports.Session = (*Session)(nil)

func newSession(account string, steps []step, out *lineWriter) *Session {
	return &Session{account: account, steps: steps, out: out}
}

func (s *Session) Next(ctx context.Context) (domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if s.closed || len(s.steps) == 0 {
			return nil, io.EOF
		}

		current := s.steps[0]
		if current.event == nil {
			s.inventory = current.inventory
			s.hasScreen = true
			s.steps = s.steps[1:]
			continue
		}

		if s.remaining == 0 {
			s.remaining = current.repeat
		}
		s.remaining--
		if s.remaining == 0 {
			s.steps = s.steps[1:]
		}
		if _, ok := current.event.(domain.DisconnectEvent); ok {
			s.closed = true
		}
		return current.event, nil
	}
}

func (s *Session) SendCommand(command domain.Command) {
	s.out.printf("%s\t/%s\n", s.account, command)
}

func (s *Session) SetClientInformation(info domain.ClientInformation) {
	s.out.printf("%s\tclient-information main_hand=%s\n", s.account, info.MainHand)
}

func (s *Session) InventorySlots() ([]domain.InventorySlot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasScreen {
		return nil, false
	}
	return s.inventory, true
}

func (s *Session) ClickSlot(index int) {
	s.out.printf("%s\tclick %d\n", s.account, index)
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// lineWriter serialises writes from concurrently running sessions.
type lineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lineWriter) printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, _ = fmt.Fprintf(l.w, format, args...)
}
