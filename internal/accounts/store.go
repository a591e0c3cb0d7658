// Package accounts keeps the role-partitioned registry of local credential
// records. This is an explicit prototype: credentials are stored and compared
// as plain text in the profile store.
package accounts

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/campus-plates/portal/internal/models"
	"github.com/campus-plates/portal/internal/storage"
)

// registryKey is the profile-store key holding the whole account registry.
const registryKey = "accounts"

var (
	// ErrAlreadyExists means the role partition already holds that username.
	ErrAlreadyExists = errors.New("account already exists for this role")
	// ErrInvalidCredentials means no matching account or a password mismatch.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrMissingFields means username or password was blank.
	ErrMissingFields = errors.New("username and password are required")
)

// registry is the stored JSON shape: one credential list per role.
type registry map[models.Role][]models.Account

// Store registers and authenticates accounts against the profile store.
type Store struct {
	storage *storage.Store
	logger  *zap.Logger
}

// NewStore creates an account store backed by the given profile store.
func NewStore(st *storage.Store, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{storage: st, logger: logger}
}

// Register appends a credential record under the given role. The whole
// registry is rewritten on success. Usernames collide case-insensitively
// within one role partition only; the same username under the other role is a
// distinct account.
func (s *Store) Register(role models.Role, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrMissingFields
	}

	reg, err := s.load()
	if err != nil {
		return err
	}
	for _, acct := range reg[role] {
		if strings.EqualFold(acct.Username, username) {
			return ErrAlreadyExists
		}
	}
	reg[role] = append(reg[role], models.Account{Username: username, Password: password})
	if err := s.save(reg); err != nil {
		return err
	}
	s.logger.Info("account registered",
		zap.String("role", string(role)),
		zap.String("username", username),
	)
	return nil
}

// Authenticate looks up the account by role and case-insensitive username and
// compares the password case-sensitively.
func (s *Store) Authenticate(role models.Role, username, password string) (models.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.Account{}, ErrMissingFields
	}

	reg, err := s.load()
	if err != nil {
		return models.Account{}, err
	}
	for _, acct := range reg[role] {
		if strings.EqualFold(acct.Username, username) {
			if acct.Password != password {
				return models.Account{}, ErrInvalidCredentials
			}
			acct.Role = role
			return acct, nil
		}
	}
	return models.Account{}, ErrInvalidCredentials
}

func (s *Store) load() (registry, error) {
	raw, ok, err := s.storage.Get(registryKey)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	reg := registry{models.RoleFaculty: nil, models.RoleStudent: nil}
	if !ok {
		return reg, nil
	}
	if err := json.Unmarshal([]byte(raw), &reg); err != nil {
		// A corrupt registry is unrecoverable by the user; start fresh.
		s.logger.Warn("account registry unreadable, resetting", zap.Error(err))
		return registry{models.RoleFaculty: nil, models.RoleStudent: nil}, nil
	}
	return reg, nil
}

func (s *Store) save(reg registry) error {
	raw, err := json.Marshal(reg)
	if err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}
	if err := s.storage.Put(registryKey, string(raw)); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}
	return nil
}
