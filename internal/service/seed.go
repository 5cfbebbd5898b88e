package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// SeedAdmin makes sure an account with the given username exists. An
// already existing account is left untouched.
func (a *Auth) SeedAdmin(ctx context.Context, username, email, password string) error {
	_, err := a.Register(ctx, RegisterInput{
		Username:         username,
		Email:            email,
		Password:         password,
		RepeatedPassword: password,
	})
	if errors.Is(err, ErrUsernameTaken) {
		zap.L().Debug("Admin account already present", zap.String("username", username))
		return nil
	}

	if err != nil {
		return err
	}

	zap.L().Info("Created admin account", zap.String("username", username))
	return nil
}
