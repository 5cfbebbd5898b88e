package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordValidator(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"", ErrPasswordEmpty},
		{"Ab1!", ErrPasswordTooShort},
		{"Ab1!" + strings.Repeat("x", 252), ErrPasswordTooLong},
		{"Abcdef!", ErrPasswordNoDigit},
		{"ABCDE1!", ErrPasswordNoLower},
		{"abcde1!", ErrPasswordNoUpper},
		{"Abcde12", ErrPasswordNoSymbol},
		{"Abcde1!", nil},
		{"P@ssw0rd", nil},
	}

	for _, tt := range tests {
		err := PasswordValidator(tt.in)
		if tt.want == nil {
			assert.NoError(t, err, "password %q", tt.in)
			continue
		}
		assert.ErrorIs(t, err, tt.want, "password %q", tt.in)
	}
}

func TestUsernameValidator(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"", ErrUsernameEmpty},
		{strings.Repeat("a", 65), ErrUsernameTooLong},
		{"john doe", ErrUsernameInvalid},
		{"jöhn", ErrUsernameInvalid},
		{"john", nil},
		{"john.doe-1+test@x_y", nil},
		{strings.Repeat("a", 64), nil},
	}

	for _, tt := range tests {
		err := UsernameValidator(tt.in)
		if tt.want == nil {
			assert.NoError(t, err, "username %q", tt.in)
			continue
		}
		assert.ErrorIs(t, err, tt.want, "username %q", tt.in)
	}
}

func TestEmailValidator(t *testing.T) {
	assert.ErrorIs(t, EmailValidator(""), ErrEmailEmpty)
	assert.ErrorIs(t, EmailValidator("nope"), ErrEmailInvalid)
	assert.ErrorIs(t, EmailValidator("John <john@example.com>"), ErrEmailInvalid)
	assert.ErrorIs(t, EmailValidator(" john@example.com"), ErrEmailInvalid)
	assert.NoError(t, EmailValidator("john@example.com"))
}
