package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/molliqajbedrush-arch/enerbewwer/internal/model"
	"github.com/molliqajbedrush-arch/enerbewwer/pkg/security"

	"gorm.io/gorm"
)

// Session is what register and login hand back to the client
type Session struct {
	Token string
	User  *model.User
}

// Accounts is the credential store: users, their password hashes and the
// tokens minted for them.
type Accounts struct {
	db     *gorm.DB
	argon  *security.ArgonHash
	tokens *security.Tokens
	now    func() time.Time

	// Verified against when the email is unknown so both login failures
	// cost the same
	dummyHash string
}

func NewAccounts(db *gorm.DB, argon *security.ArgonHash, tokens *security.Tokens) (*Accounts, error) {
	dummy, err := argon.GenerateFromPassword("dummy-password")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash, %w", err)
	}

	return &Accounts{
		db:        db,
		argon:     argon,
		tokens:    tokens,
		now:       time.Now,
		dummyHash: dummy,
	}, nil
}

// Register creates a user and logs them in. Emails are compared exactly as
// given, "A@b.de" and "a@b.de" are two different accounts.
func (a *Accounts) Register(ctx context.Context, email, password, name string) (*Session, error) {
	var found int64

	err := a.db.WithContext(ctx).
		Model(model.User{}).
		Where("email = ?", email).
		Count(&found).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to check if user is registered, %w", err)
	}

	if found > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := a.argon.GenerateFromPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password, %w", err)
	}

	userID, err := newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID, %w", err)
	}

	user := &model.User{
		ID:           userID,
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    a.now().UTC(),
	}

	if err := a.db.WithContext(ctx).Create(user).Error; err != nil {
		// Lost a race against a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}

		return nil, fmt.Errorf("failed to create user, %w", err)
	}

	return a.session(user)
}

// Login checks the password and mints a fresh token. Unknown email and wrong
// password both come back as ErrInvalidCredentials.
func (a *Accounts) Login(ctx context.Context, email, password string) (*Session, error) {
	var user model.User

	err := a.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			a.argon.VerifyPasswd(password, a.dummyHash)
			return nil, ErrInvalidCredentials
		}

		return nil, fmt.Errorf("failed to look up user, %w", err)
	}

	ok, err := a.argon.VerifyPasswd(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password, %w", err)
	}

	if !ok {
		return nil, ErrInvalidCredentials
	}

	return a.session(&user)
}

// Authenticate resolves a raw bearer token to the user it was issued for.
// Token errors come from the security package, a missing user is
// ErrUserNotFound.
func (a *Accounts) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := a.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	return a.Current(ctx, claims.UserID)
}

// Current returns the profile of userID
func (a *Accounts) Current(ctx context.Context, userID string) (*model.User, error) {
	var user model.User

	err := a.db.WithContext(ctx).
		Where("id = ?", userID).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to look up user, %w", err)
	}

	return &user, nil
}

func (a *Accounts) session(user *model.User) (*Session, error) {
	token, err := a.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, User: user}, nil
}
