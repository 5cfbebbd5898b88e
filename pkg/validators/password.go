package validators

import (
	"errors"
	"unicode"
)

var (
	ErrPasswordEmpty    = errors.New("no password provided")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong  = errors.New("password is too long")
	ErrPasswordNoDigit  = errors.New("password must contain at least one digit")
	ErrPasswordNoLower  = errors.New("password must contain at least one lowercase letter")
	ErrPasswordNoUpper  = errors.New("password must contain at least one uppercase letter")
	ErrPasswordNoSymbol = errors.New("password must contain at least one non alphanumeric character")
)

const (
	minPasswordLen = 6
	maxPasswordLen = 255
)

func PasswordValidator(p string) error {
	if p == "" {
		return ErrPasswordEmpty
	}

	if len(p) < minPasswordLen {
		return ErrPasswordTooShort
	}

	if len(p) > maxPasswordLen {
		return ErrPasswordTooLong
	}

	var digit, lower, upper, other bool
	for _, r := range p {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case !unicode.IsLetter(r):
			other = true
		}
	}

	switch {
	case !digit:
		return ErrPasswordNoDigit
	case !lower:
		return ErrPasswordNoLower
	case !upper:
		return ErrPasswordNoUpper
	case !other:
		return ErrPasswordNoSymbol
	}

	return nil
}
