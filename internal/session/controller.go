// Package session holds the signed-in identity and its persistence across
// restarts.
package session

import (
	"errors"

	"go.uber.org/zap"

	"github.com/campus-plates/portal/internal/accounts"
	"github.com/campus-plates/portal/internal/models"
	"github.com/campus-plates/portal/internal/storage"
)

// Profile-store keys for the persisted session identity.
const (
	keyRole     = "session.role"
	keyUsername = "session.username"
)

// User-visible authentication messages. Exactly one is surfaced at a time.
const (
	MsgMissingFields      = "Please fill in all fields."
	MsgInvalidCredentials = "Invalid username or password."
	MsgAlreadyRegistered  = "That username is already registered for this role."
	MsgRegistered         = "Account created. You can sign in now."
)

// Controller is the session state machine: SignedOut or SignedIn(role, username).
type Controller struct {
	accounts *accounts.Store
	storage  *storage.Store
	logger   *zap.Logger

	session  models.Session
	authRole models.Role // role selected on the auth form while signed out
	message  string
}

// NewController creates a signed-out controller. The auth form starts on the
// student role.
func NewController(acct *accounts.Store, st *storage.Store, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		accounts: acct,
		storage:  st,
		logger:   logger,
		authRole: models.RoleStudent,
	}
}

// Session returns the current identity (zero-valued when signed out).
func (c *Controller) Session() models.Session {
	return c.session
}

// Message returns the pending authentication message, if any.
func (c *Controller) Message() string {
	return c.message
}

// AuthRole returns the role currently selected on the auth form.
func (c *Controller) AuthRole() models.Role {
	return c.authRole
}

// SelectAuthRole switches the auth form's role. It is independent from the
// authenticated role and clears any pending message.
func (c *Controller) SelectAuthRole(role models.Role) {
	c.authRole = role
	c.message = ""
}

// CanMutate is the single permission rule for mutating actions: signed in as
// faculty. Every other state makes mutations silent no-ops at the call sites.
func (c *Controller) CanMutate() bool {
	return c.session.SignedIn() && c.session.Role == models.RoleFaculty
}

// Login authenticates against the selected auth role. On success the identity
// is persisted so a restart resumes the session without re-authentication.
func (c *Controller) Login(username, password string) error {
	acct, err := c.accounts.Authenticate(c.authRole, username, password)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrMissingFields):
			c.message = MsgMissingFields
		case errors.Is(err, accounts.ErrInvalidCredentials):
			c.message = MsgInvalidCredentials
		default:
			c.message = MsgInvalidCredentials
			c.logger.Warn("login failed", zap.Error(err))
		}
		return err
	}

	c.session = models.Session{Role: acct.Role, Username: acct.Username}
	c.message = ""
	if err := c.storage.Put(keyRole, string(acct.Role)); err != nil {
		c.logger.Warn("persist session role", zap.Error(err))
	}
	if err := c.storage.Put(keyUsername, acct.Username); err != nil {
		c.logger.Warn("persist session username", zap.Error(err))
	}
	c.logger.Info("signed in",
		zap.String("role", string(acct.Role)),
		zap.String("username", acct.Username),
	)
	return nil
}

// Register creates an account under the selected auth role. Registration does
// not sign the user in.
func (c *Controller) Register(username, password string) error {
	err := c.accounts.Register(c.authRole, username, password)
	switch {
	case err == nil:
		c.message = MsgRegistered
	case errors.Is(err, accounts.ErrMissingFields):
		c.message = MsgMissingFields
	case errors.Is(err, accounts.ErrAlreadyExists):
		c.message = MsgAlreadyRegistered
	default:
		c.message = MsgAlreadyRegistered
		c.logger.Warn("register failed", zap.Error(err))
	}
	return err
}

// Logout clears the identity and its persisted copy.
func (c *Controller) Logout() {
	if !c.session.SignedIn() {
		return
	}
	c.logger.Info("signed out", zap.String("username", c.session.Username))
	c.session = models.Session{}
	c.message = ""
	if err := c.storage.Delete(keyRole); err != nil {
		c.logger.Warn("clear session role", zap.Error(err))
	}
	if err := c.storage.Delete(keyUsername); err != nil {
		c.logger.Warn("clear session username", zap.Error(err))
	}
}

// Restore resumes a previously persisted session, if any. Unreadable or
// partial state is treated as signed out.
func (c *Controller) Restore() {
	roleRaw, okRole, err := c.storage.Get(keyRole)
	if err != nil {
		c.logger.Warn("restore session role", zap.Error(err))
		return
	}
	username, okName, err := c.storage.Get(keyUsername)
	if err != nil {
		c.logger.Warn("restore session username", zap.Error(err))
		return
	}
	if !okRole || !okName {
		return
	}
	role := models.ParseRole(roleRaw)
	if role == "" || username == "" {
		return
	}
	c.session = models.Session{Role: role, Username: username}
	c.logger.Info("session restored",
		zap.String("role", string(role)),
		zap.String("username", username),
	)
}
