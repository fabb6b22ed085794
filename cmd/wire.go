package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/bnema/introvert/internal/adapters/render/plan"
	"github.com/bnema/introvert/internal/adapters/repo/roster"
	"github.com/bnema/introvert/internal/application"
	"github.com/bnema/introvert/internal/config"
	"github.com/bnema/introvert/internal/domain"
	"github.com/bnema/introvert/internal/observability"
	"github.com/bnema/introvert/internal/ports"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type app struct {
	cfg          config.Config
	roster       ports.AccountRepository
	planRenderer func(application.Plan) (string, error)
	environ      func() []string
}

func wireApp() (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	repo, err := roster.NewRepository(cfg.Roster.Path)
	if err != nil {
		return nil, fmt.Errorf("wire account roster: %w", err)
	}

	return &app{
		cfg:          cfg,
		roster:       repo,
		planRenderer: plan.Render,
		environ:      os.Environ,
	}, nil
}

// swarmConfig merges roster accounts with INTROVERT_ACCOUNT* names and
// validates the result. Any error here aborts before an account joins.
func (a *app) swarmConfig(ctx context.Context) (domain.SwarmConfig, error) {
	accounts, err := a.roster.List(ctx)
	if err != nil {
		return domain.SwarmConfig{}, fmt.Errorf("list roster accounts: %w", err)
	}

	for _, name := range config.EnvAccounts(a.environ()) {
		accounts = append(accounts, domain.NewAccountIdentity(name, uuid.Nil))
	}

	cfg := domain.SwarmConfig{
		DestinationName: a.cfg.Swarm.Destination,
		JoinDelay:       a.cfg.Swarm.JoinDelay,
		Host:            a.cfg.Swarm.Host,
		Accounts:        domain.NormalizeAccounts(accounts),
	}
	if err := cfg.Validate(); err != nil {
		return domain.SwarmConfig{}, err
	}

	return cfg, nil
}

func (a *app) newLogger(w io.Writer) (*zap.Logger, error) {
	logger, err := observability.NewLogger(a.cfg.Logger, zapcore.AddSync(w))
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}
	return logger, nil
}

// syncWriter lets the logger and the spinner share one stream.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.w.Write(p)
}
