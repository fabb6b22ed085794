package ports

import (
	"context"

	"github.com/bnema/introvert/internal/domain"
)

type AccountRepository interface {
	GetByName(ctx context.Context, name string) (domain.AccountIdentity, error)
	List(ctx context.Context) ([]domain.AccountIdentity, error)
	Save(ctx context.Context, account domain.AccountIdentity) error
}
