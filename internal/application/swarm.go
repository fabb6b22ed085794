package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/introvert/internal/domain"
	"github.com/bnema/introvert/internal/ports"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AssignTargets creates one fresh state per configured account. The account
// named like the destination anchors on its own island, every other account
// visits the destination.
func AssignTargets(cfg domain.SwarmConfig) []*domain.AccountState {
	states := make([]*domain.AccountState, 0, len(cfg.Accounts))
	for _, account := range cfg.Accounts {
		target := cfg.DestinationName
		if account.Matches(cfg.DestinationName) {
			target = ""
		}
		states = append(states, domain.NewAccountState(account, target))
	}
	return states
}

// JoinProgress is called after each account attempted to join.
type JoinProgress func(joined int, total int)

type SwarmOption func(*Swarm)

func WithJoinProgress(progress JoinProgress) SwarmOption {
	return func(s *Swarm) {
		s.progress = progress
	}
}

// Swarm joins every configured account one after another and runs one Agent
// per joined account.
type Swarm struct {
	cfg        domain.SwarmConfig
	connector  ports.Connector
	baseLogger *zap.Logger
	logger     *zap.Logger
	progress   JoinProgress

	mu       sync.Mutex
	group    *errgroup.Group
	joinDone chan struct{}
	agents   []*Agent
}

func NewSwarm(cfg domain.SwarmConfig, connector ports.Connector, logger *zap.Logger, opts ...SwarmOption) (*Swarm, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid swarm config: %w", err)
	}
	if connector == nil {
		return nil, errors.New("connector is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Swarm{
		cfg:        cfg,
		connector:  connector,
		baseLogger: logger,
		logger:     logger.With(zap.String("component", "swarm")),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Start joins the accounts sequentially, pausing JoinDelay after each join,
// and starts each account's agent as soon as it joined. It returns once every
// account had its turn. Accounts that fail to connect are logged and skipped.
// An agent that stops with an error does not affect the others.
func (s *Swarm) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.group != nil {
		s.mu.Unlock()
		return errors.New("swarm already started")
	}
	group := new(errgroup.Group)
	joinDone := make(chan struct{})
	s.group = group
	s.joinDone = joinDone
	s.mu.Unlock()
	defer close(joinDone)

	s.logger.Info("starting swarm",
		zap.String("host", s.cfg.Host),
		zap.String("destination", s.cfg.DestinationName),
		zap.Int("accounts", len(s.cfg.Accounts)),
	)
	for _, account := range s.cfg.Accounts {
		s.logger.Info("account", zap.String("name", account.Name), zap.Stringer("id", account.ID))
	}
	if !s.cfg.HasDestinationAccount() {
		s.logger.Warn("destination not found in accounts list", zap.String("destination", s.cfg.DestinationName))
	}

	states := AssignTargets(s.cfg)
	for i, state := range states {
		if i > 0 {
			if err := pause(ctx, s.cfg.JoinDelay); err != nil {
				return fmt.Errorf("wait for join slot: %w", err)
			}
		}

		session, err := s.connector.Connect(ctx, s.cfg.Host, state.Identity)
		if err != nil {
			s.logger.Error("join failed", zap.String("account", state.Identity.Name), zap.Error(err))
		} else {
			s.startAgent(ctx, group, NewAgent(session, state, s.baseLogger))
		}

		if s.progress != nil {
			s.progress(i+1, len(states))
		}
	}

	return nil
}

func (s *Swarm) startAgent(ctx context.Context, group *errgroup.Group, agent *Agent) {
	s.mu.Lock()
	s.agents = append(s.agents, agent)
	s.mu.Unlock()

	name := agent.State().Identity.Name
	group.Go(func() error {
		err := agent.Run(ctx)
		if err == nil || errors.Is(err, context.Canceled) {
			return nil
		}
		s.logger.Error("agent stopped", zap.String("account", name), zap.Error(err))
		return fmt.Errorf("account %s: %w", name, err)
	})
}

// Wait blocks until joining is over and every started agent has stopped. It
// returns the first agent error, if any.
func (s *Swarm) Wait() error {
	s.mu.Lock()
	group, joinDone := s.group, s.joinDone
	s.mu.Unlock()

	if group == nil {
		return nil
	}
	<-joinDone
	return group.Wait()
}

// Run is Start followed by Wait.
func (s *Swarm) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		if waitErr := s.Wait(); waitErr != nil {
			return errors.Join(err, waitErr)
		}
		return err
	}
	return s.Wait()
}

// Agents returns the agents started so far, in join order.
func (s *Swarm) Agents() []*Agent {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*Agent(nil), s.agents...)
}

// pause waits d measured from the end of the previous join.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
