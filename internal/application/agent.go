package application

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bnema/introvert/internal/domain"
	"github.com/bnema/introvert/internal/ports"
	"go.uber.org/zap"
)

// Agent owns one account's state and pulls its session's events one at a
// time, in arrival order. Nothing else touches the state, so no locking is
// needed.
type Agent struct {
	session ports.Session
	router  *Router
	logger  *zap.Logger
}

func NewAgent(session ports.Session, state *domain.AccountState, logger *zap.Logger) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Agent{
		session: session,
		router:  NewRouter(session, state, logger),
		logger:  logger.With(zap.String("account", state.Identity.Name)),
	}
}

func (a *Agent) State() *domain.AccountState {
	return a.router.State()
}

// Run handles events until the session ends or ctx is done. The session is
// closed before Run returns.
func (a *Agent) Run(ctx context.Context) error {
	defer func() {
		if err := a.session.Close(); err != nil {
			a.logger.Warn("close session", zap.Error(err))
		}
	}()

	for {
		event, err := a.session.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				a.logger.Info("session ended")
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return fmt.Errorf("next event: %w", err)
		}
		a.router.Handle(event)
	}
}
