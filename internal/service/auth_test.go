package service

import (
	"bitwise74/company-api/db"
	"bitwise74/company-api/internal/model"
	"bitwise74/company-api/pkg/security"
	"bitwise74/company-api/pkg/validators"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

func newTestAuth(t *testing.T) *Auth {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := db.Open(sqlite.Open("file:" + name + "?mode=memory&cache=shared&_foreign_keys=on"))
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	argon := &security.ArgonHash{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
	return NewAuth(conn, argon, NewTokenIssuer(testSecret, 5*time.Minute, "company-api", "company-api"))
}

func validInput() RegisterInput {
	return RegisterInput{
		Username:         "john",
		Email:            "john@example.com",
		Password:         "Secret1!",
		RepeatedPassword: "Secret1!",
	}
}

func TestRegister(t *testing.T) {
	a := newTestAuth(t)

	u, err := a.Register(context.Background(), validInput())
	require.NoError(t, err)

	assert.Len(t, u.ID, 21)
	assert.Equal(t, "john", u.Username)
	assert.Equal(t, "JOHN", u.NormalizedUsername)
	assert.Equal(t, "JOHN@EXAMPLE.COM", u.NormalizedEmail)
	assert.NotEmpty(t, u.SecurityStamp)
	assert.NotEmpty(t, u.ConcurrencyStamp)
	assert.NotEqual(t, u.SecurityStamp, u.ConcurrencyStamp)
	assert.False(t, u.CreatedAt.IsZero())
	assert.True(t, strings.HasPrefix(u.PasswordHash, "$argon2id$"))

	var stored model.User
	require.NoError(t, a.db.Where("id = ?", u.ID).First(&stored).Error)
	assert.Equal(t, u.PasswordHash, stored.PasswordHash)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	a := newTestAuth(t)

	in := validInput()
	in.RepeatedPassword = "Secret2!"

	_, err := a.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestRegisterValidation(t *testing.T) {
	a := newTestAuth(t)

	tests := []struct {
		mutate func(*RegisterInput)
		field  string
		want   error
	}{
		{func(in *RegisterInput) { in.Username = "john doe" }, "login", validators.ErrUsernameInvalid},
		{func(in *RegisterInput) { in.Email = "nope" }, "email", validators.ErrEmailInvalid},
		{func(in *RegisterInput) { in.Password, in.RepeatedPassword = "secret1!", "secret1!" }, "password", validators.ErrPasswordNoUpper},
	}

	for _, tt := range tests {
		in := validInput()
		tt.mutate(&in)

		_, err := a.Register(context.Background(), in)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, tt.field, vErr.Field)
		assert.ErrorIs(t, err, tt.want)
	}
}

func TestRegisterDuplicateIgnoresCase(t *testing.T) {
	a := newTestAuth(t)

	_, err := a.Register(context.Background(), validInput())
	require.NoError(t, err)

	in := validInput()
	in.Username = "JOHN"

	_, err = a.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	a := newTestAuth(t)

	u, err := a.Register(context.Background(), validInput())
	require.NoError(t, err)

	res, err := a.Login(context.Background(), "John", "Secret1!")
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)

	claims, err := a.Tokens().Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.Subject)
	assert.Equal(t, "john", claims.Username)
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	a := newTestAuth(t)

	_, err := a.Register(context.Background(), validInput())
	require.NoError(t, err)

	_, wrongPass := a.Login(context.Background(), "john", "Wrong1!!")
	_, unknownUser := a.Login(context.Background(), "nobody", "Secret1!")

	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPass.Error(), unknownUser.Error())
}

func TestUser(t *testing.T) {
	a := newTestAuth(t)

	u, err := a.Register(context.Background(), validInput())
	require.NoError(t, err)

	got, err := a.User(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "john", got.Username)

	_, err = a.User(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	a := newTestAuth(t)

	require.NoError(t, a.SeedAdmin(context.Background(), "admin", "admin@localhost.localdomain", "Admin1!x"))
	require.NoError(t, a.SeedAdmin(context.Background(), "admin", "admin@localhost.localdomain", "Other1!x"))

	var count int64
	require.NoError(t, a.db.Model(model.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// The first password stays
	_, err := a.Login(context.Background(), "admin", "Admin1!x")
	assert.NoError(t, err)
}
