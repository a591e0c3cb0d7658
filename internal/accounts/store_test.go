package accounts

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/campus-plates/portal/internal/models"
	"github.com/campus-plates/portal/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := storage.Open(filepath.Join(t.TempDir(), "profile.db"), nil)
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return NewStore(st, nil)
}

func TestRegisterDuplicateSameRole(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Register(models.RoleFaculty, "alice", "pw"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := store.Register(models.RoleFaculty, "alice", "other"); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("duplicate register = %v, want ErrAlreadyExists", err)
	}
	// Case-insensitive collision within the partition.
	if err := store.Register(models.RoleFaculty, "ALICE", "pw"); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("case-variant register = %v, want ErrAlreadyExists", err)
	}
	// Same username under the other role is its own namespace.
	if err := store.Register(models.RoleStudent, "alice", "pw"); err != nil {
		t.Fatalf("other-role register: %v", err)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Register(models.RoleStudent, "", "pw"); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("blank username = %v, want ErrMissingFields", err)
	}
	if err := store.Register(models.RoleStudent, "bob", ""); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("blank password = %v, want ErrMissingFields", err)
	}
}

func TestAuthenticateCaseRules(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Register(models.RoleFaculty, "alice", "x"); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Username comparison is case-insensitive.
	acct, err := store.Authenticate(models.RoleFaculty, "Alice", "x")
	if err != nil {
		t.Fatalf("authenticate with username case variant: %v", err)
	}
	if acct.Username != "alice" || acct.Role != models.RoleFaculty {
		t.Fatalf("account = %+v", acct)
	}

	// Password comparison is case-sensitive.
	if _, err := store.Authenticate(models.RoleFaculty, "alice", "X"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("password case variant = %v, want ErrInvalidCredentials", err)
	}
	// Role partitions are independent.
	if _, err := store.Authenticate(models.RoleStudent, "alice", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("other-role authenticate = %v, want ErrInvalidCredentials", err)
	}
	if _, err := store.Authenticate(models.RoleFaculty, "nobody", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegistrySurvivesReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "profile.db")
	st, err := storage.Open(path, nil)
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	store := NewStore(st, nil)
	if err := store.Register(models.RoleFaculty, "prof", "secret"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	st2, err := storage.Open(path, nil)
	if err != nil {
		t.Fatalf("reopen storage: %v", err)
	}
	defer st2.Close()
	if _, err := NewStore(st2, nil).Authenticate(models.RoleFaculty, "prof", "secret"); err != nil {
		t.Fatalf("authenticate after reopen: %v", err)
	}
}
