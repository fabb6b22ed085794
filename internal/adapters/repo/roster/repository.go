package roster

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/introvert/internal/domain"
	"github.com/bnema/introvert/internal/ports"
	"github.com/google/uuid"
)

const (
	rosterFileMode  = 0o600
	rosterDirMode   = 0o700
	tempFilePattern = ".roster-*.tmp"
)

// Repository stores the account roster in a single TOML or YAML file.
type Repository struct {
	path  string
	codec codec
	mu    *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.AccountRepository = (*Repository)(nil)

func NewRepository(path string) (*Repository, error) {
	if path == "" {
		return nil, errors.New("roster path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve roster path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	return &Repository{path: absPath, codec: codecForPath(absPath), mu: lockForPath(absPath)}, nil
}

// Save appends account, or replaces the entry with the same name ignoring
// case.
func (r *Repository) Save(ctx context.Context, account domain.AccountIdentity) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(account)
	updated := false
	for i := range file.Accounts {
		if account.Matches(file.Accounts[i].Name) {
			file.Accounts[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Accounts = append(file.Accounts, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) GetByName(ctx context.Context, name string) (domain.AccountIdentity, error) {
	accounts, err := r.List(ctx)
	if err != nil {
		return domain.AccountIdentity{}, err
	}

	for _, account := range accounts {
		if account.Matches(name) {
			return account, nil
		}
	}

	return domain.AccountIdentity{}, domain.ErrAccountNotFound
}

func (r *Repository) List(ctx context.Context) ([]domain.AccountIdentity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	accounts := make([]domain.AccountIdentity, 0, len(file.Accounts))
	for i, entry := range file.Accounts {
		account, err := fromSchema(entry)
		if err != nil {
			return nil, fmt.Errorf("roster entry %d: %w", i, err)
		}
		accounts = append(accounts, account)
	}

	return accounts, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read roster file: %w", err)
	}

	var file fileSchema
	if err := r.codec.unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode roster file as %s: %w", r.codec.name, err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.path), rosterDirMode); err != nil {
		return fmt.Errorf("create roster directory: %w", err)
	}

	data, err := r.codec.marshal(file)
	if err != nil {
		return fmt.Errorf("encode roster file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp roster file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp roster file: %w", err)
	}

	if err := tempFile.Chmod(rosterFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp roster file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp roster file: %w", err)
	}

	if err := os.Rename(tempName, r.path); err != nil {
		return fmt.Errorf("replace roster file: %w", err)
	}

	cleanup = false
	return nil
}

func toSchema(account domain.AccountIdentity) accountSchema {
	return accountSchema{Name: account.Name, UUID: account.ID.String()}
}

func fromSchema(entry accountSchema) (domain.AccountIdentity, error) {
	id := uuid.Nil
	if entry.UUID != "" {
		parsed, err := uuid.Parse(entry.UUID)
		if err != nil {
			return domain.AccountIdentity{}, fmt.Errorf("parse uuid for %q: %w", entry.Name, err)
		}
		id = parsed
	}

	return domain.NewAccountIdentity(entry.Name, id), nil
}
