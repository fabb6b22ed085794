package ports

import (
	"context"

	"github.com/bnema/introvert/internal/domain"
)

// Client is the outbound half of a connected account. Every call is fire and
// forget: nothing is acknowledged back to the caller.
type Client interface {
	SendCommand(command domain.Command)
	SetClientInformation(info domain.ClientInformation)
	// InventorySlots returns the currently open container, or false when no
	// container is available.
	InventorySlots() ([]domain.InventorySlot, bool)
	ClickSlot(index int)
}

// Session is one joined account. Next blocks until the next event arrives and
// returns io.EOF once the remote side went away.
type Session interface {
	Client
	Next(ctx context.Context) (domain.Event, error)
	Close() error
}

type Connector interface {
	Connect(ctx context.Context, host string, account domain.AccountIdentity) (Session, error)
}
