package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// identityNamespace seeds ids derived from account names when the roster
// does not pin one.
var identityNamespace = uuid.MustParse("5f1c0c8e-7a55-4b1e-9f3c-1e0c4b6d2a90")

type AccountIdentity struct {
	Name string
	ID   uuid.UUID
}

// NewAccountIdentity builds an identity for name. A nil id is replaced by one
// derived from the lower-cased name so the same account keeps the same id
// across runs.
func NewAccountIdentity(name string, id uuid.UUID) AccountIdentity {
	name = strings.TrimSpace(name)
	if id == uuid.Nil {
		id = uuid.NewSHA1(identityNamespace, []byte(strings.ToLower(name)))
	}

	return AccountIdentity{Name: name, ID: id}
}

// Matches reports whether the identity's name equals name, ignoring case.
func (a AccountIdentity) Matches(name string) bool {
	return strings.EqualFold(a.Name, strings.TrimSpace(name))
}

func (a AccountIdentity) String() string {
	return fmt.Sprintf("%s %s", a.Name, a.ID)
}

type SwarmConfig struct {
	DestinationName string
	JoinDelay       time.Duration
	Host            string
	Accounts        []AccountIdentity
}

func (c SwarmConfig) Validate() error {
	if strings.TrimSpace(c.DestinationName) == "" {
		return ErrMissingDestination
	}
	if len(c.Accounts) == 0 {
		return ErrNoAccounts
	}
	if c.JoinDelay < 0 {
		return fmt.Errorf("join delay must not be negative, got %s", c.JoinDelay)
	}
	for i, account := range c.Accounts {
		if account.Name == "" {
			return fmt.Errorf("account %d: name is required", i)
		}
	}

	return nil
}

// HasDestinationAccount reports whether one of the configured accounts is the
// destination itself.
func (c SwarmConfig) HasDestinationAccount() bool {
	for _, account := range c.Accounts {
		if account.Matches(c.DestinationName) {
			return true
		}
	}
	return false
}

// NormalizeAccounts drops blank names and case-insensitive duplicates while
// keeping the first occurrence's position.
func NormalizeAccounts(accounts []AccountIdentity) []AccountIdentity {
	normalized := make([]AccountIdentity, 0, len(accounts))
	seen := make(map[string]struct{}, len(accounts))
	for _, account := range accounts {
		key := strings.ToLower(strings.TrimSpace(account.Name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		normalized = append(normalized, account)
	}

	return normalized
}
