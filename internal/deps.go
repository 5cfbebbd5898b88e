package internal

import (
	"bitwise74/company-api/db"
	"bitwise74/company-api/internal/service"
	"bitwise74/company-api/pkg/middleware"
	"bitwise74/company-api/pkg/security"
	"context"
	"fmt"

	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type Deps struct {
	DB    *gorm.DB
	Argon *security.ArgonHash
	Auth  *service.Auth

	// Nil when rate limiting is turned off
	Limiter *middleware.RateLimiter
}

// NewDeps opens the configured database and builds the services on top
// of it. When seed.admin_password is set the admin account is created
// if it doesn't exist yet.
func NewDeps(ctx context.Context) (*Deps, error) {
	conn, err := db.New()
	if err != nil {
		return nil, err
	}

	d := FromDB(conn, security.New())

	if pass := viper.GetString("seed.admin_password"); pass != "" {
		err := d.Auth.SeedAdmin(ctx,
			viper.GetString("seed.admin_username"),
			viper.GetString("seed.admin_email"),
			pass,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to seed admin account, %w", err)
		}
	}

	return d, nil
}

// FromDB wires the services around an already opened database
func FromDB(conn *gorm.DB, argon *security.ArgonHash) *Deps {
	tokens := service.NewTokenIssuer(
		viper.GetString("jwt.secret"),
		viper.GetDuration("jwt.expiry"),
		viper.GetString("jwt.issuer"),
		viper.GetString("jwt.audience"),
	)

	d := &Deps{
		DB:    conn,
		Argon: argon,
		Auth:  service.NewAuth(conn, argon, tokens),
	}

	if rps := viper.GetInt("security.rate_limit"); rps > 0 {
		d.Limiter = middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: rps,
			Burst:             rps * 2,
		})
	}

	return d
}

// Close stops the background work started by FromDB and closes the
// database
func (d *Deps) Close() error {
	if d.Limiter != nil {
		d.Limiter.Stop()
	}

	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
