package application

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/bnema/introvert/internal/domain"
	"github.com/bnema/introvert/internal/ports"
)

type fakeClient struct {
	mu        sync.Mutex
	commands  []domain.Command
	clicks    []int
	infos     []domain.ClientInformation
	slots     []domain.InventorySlot
	hasScreen bool
}

var _ ports.Client = (*fakeClient)(nil)

func (c *fakeClient) SendCommand(command domain.Command) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commands = append(c.commands, command)
}

func (c *fakeClient) SetClientInformation(info domain.ClientInformation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.infos = append(c.infos, info)
}

func (c *fakeClient) InventorySlots() ([]domain.InventorySlot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasScreen {
		return nil, false
	}
	return c.slots, true
}

func (c *fakeClient) ClickSlot(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clicks = append(c.clicks, index)
}

func (c *fakeClient) Commands() []domain.Command {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Command(nil), c.commands...)
}

type fakeSession struct {
	fakeClient
	events []domain.Event
	block  bool
	err    error
	closed bool
}

var _ ports.Session = (*fakeSession)(nil)

func newFakeSession(events ...domain.Event) *fakeSession {
	return &fakeSession{events: events}
}

// newBlockingSession never yields an event; Next waits for ctx.
func newBlockingSession() *fakeSession {
	return &fakeSession{block: true}
}

func (s *fakeSession) Next(ctx context.Context) (domain.Event, error) {
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if s.err != nil {
		return nil, s.err
	}
	if len(s.events) == 0 {
		return nil, io.EOF
	}
	event := s.events[0]
	s.events = s.events[1:]
	return event, nil
}

func (s *fakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *fakeSession) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

type fakeConnector struct {
	mu          sync.Mutex
	scripts     map[string][]domain.Event
	preset      map[string]*fakeSession
	fail        map[string]bool
	delay       time.Duration
	joined      []string
	sessions    map[string]*fakeSession
	inFlight    int
	maxInFlight int
	started     []time.Time
	finished    []time.Time
}

var _ ports.Connector = (*fakeConnector)(nil)

var errConnectRefused = errors.New("connection refused")

func (c *fakeConnector) Connect(_ context.Context, _ string, account domain.AccountIdentity) (ports.Session, error) {
	c.mu.Lock()
	c.inFlight++
	if c.inFlight > c.maxInFlight {
		c.maxInFlight = c.inFlight
	}
	c.started = append(c.started, time.Now())
	c.mu.Unlock()

	time.Sleep(c.delay)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.inFlight--
	c.finished = append(c.finished, time.Now())
	c.joined = append(c.joined, account.Name)
	if c.fail[account.Name] {
		return nil, errConnectRefused
	}

	session, ok := c.preset[account.Name]
	if !ok {
		session = newFakeSession(c.scripts[account.Name]...)
	}
	if c.sessions == nil {
		c.sessions = map[string]*fakeSession{}
	}
	c.sessions[account.Name] = session
	return session, nil
}

func ticks(n int) []domain.Event {
	events := make([]domain.Event, n)
	for i := range events {
		events[i] = domain.TickEvent{}
	}
	return events
}
