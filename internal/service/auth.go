// Package service contains the application logic that sits between the
// HTTP handlers and the database
package service

import (
	"bitwise74/company-api/internal/model"
	"bitwise74/company-api/pkg/security"
	"bitwise74/company-api/pkg/validators"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	// ErrInvalidCredentials is returned for unknown users and wrong
	// passwords alike so callers can't tell which one it was
	ErrInvalidCredentials = errors.New("invalid user or password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrUserNotFound       = errors.New("user not found")
)

// ValidationError reports a registration field that was rejected
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

type RegisterInput struct {
	Username         string
	Email            string
	Password         string
	RepeatedPassword string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *model.User
}

type Auth struct {
	db     *gorm.DB
	argon  *security.ArgonHash
	tokens *TokenIssuer

	// Hash verified when the user doesn't exist so both failure paths
	// take about the same time
	dummyOnce sync.Once
	dummyHash string
}

func NewAuth(db *gorm.DB, argon *security.ArgonHash, tokens *TokenIssuer) *Auth {
	return &Auth{
		db:     db,
		argon:  argon,
		tokens: tokens,
	}
}

// Tokens exposes the issuer so middleware can verify what Login hands out
func (a *Auth) Tokens() *TokenIssuer {
	return a.tokens
}

func (a *Auth) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var user model.User

	err := a.db.WithContext(ctx).
		Where("normalized_username = ?", normalize(username)).
		First(&user).
		Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up user, %w", err)
		}

		a.burnVerify(password)
		return nil, ErrInvalidCredentials
	}

	ok, err := a.argon.VerifyPasswd(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password, %w", err)
	}

	if !ok {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := a.tokens.Issue(&user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      &user,
	}, nil
}

func (a *Auth) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if in.Password != in.RepeatedPassword {
		return nil, ErrPasswordMismatch
	}

	if err := validators.UsernameValidator(in.Username); err != nil {
		return nil, &ValidationError{Field: "login", Err: err}
	}

	if err := validators.EmailValidator(in.Email); err != nil {
		return nil, &ValidationError{Field: "email", Err: err}
	}

	if err := validators.PasswordValidator(in.Password); err != nil {
		return nil, &ValidationError{Field: "password", Err: err}
	}

	var taken bool

	err := a.db.WithContext(ctx).
		Model(model.User{}).
		Select("count(*) > 0").
		Where("normalized_username = ?", normalize(in.Username)).
		Find(&taken).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to check if username is taken, %w", err)
	}

	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := a.argon.GenerateFromPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password, %w", err)
	}

	id, err := gonanoid.Generate(idCharset, 21)
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID, %w", err)
	}

	user := &model.User{
		ID:                 id,
		Username:           in.Username,
		NormalizedUsername: normalize(in.Username),
		Email:              in.Email,
		NormalizedEmail:    normalize(in.Email),
		PasswordHash:       hash,
		SecurityStamp:      uuid.NewString(),
		ConcurrencyStamp:   uuid.NewString(),
		CreatedAt:          time.Now().UTC(),
	}

	if err := a.db.WithContext(ctx).Create(user).Error; err != nil {
		// Lost a race against another registration with the same name
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}

		return nil, fmt.Errorf("failed to create user, %w", err)
	}

	return user, nil
}

// User returns the account with the given ID
func (a *Auth) User(ctx context.Context, id string) (*model.User, error) {
	var user model.User

	err := a.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to fetch user, %w", err)
	}

	return &user, nil
}

func (a *Auth) burnVerify(password string) {
	a.dummyOnce.Do(func() {
		hash, err := a.argon.GenerateFromPassword(uuid.NewString())
		if err != nil {
			zap.L().Warn("Failed to prepare dummy password hash", zap.Error(err))
			return
		}
		a.dummyHash = hash
	})

	if a.dummyHash != "" {
		a.argon.VerifyPasswd(password, a.dummyHash)
	}
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
