package validators

import (
	"errors"
	"strings"
)

var (
	ErrUsernameEmpty   = errors.New("no username provided")
	ErrUsernameTooLong = errors.New("username is too long")
	ErrUsernameInvalid = errors.New("username may only contain letters, digits and -._@+")
)

const (
	maxUsernameLen  = 64
	usernameAllowed = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-._@+"
)

func UsernameValidator(u string) error {
	if u == "" {
		return ErrUsernameEmpty
	}

	if len(u) > maxUsernameLen {
		return ErrUsernameTooLong
	}

	for _, r := range u {
		if !strings.ContainsRune(usernameAllowed, r) {
			return ErrUsernameInvalid
		}
	}

	return nil
}
