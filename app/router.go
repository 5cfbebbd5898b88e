// Package app wires every endpoint and middleware into one router
package app

import (
	"bitwise74/company-api/app/company"
	"bitwise74/company-api/app/review"
	"bitwise74/company-api/app/root"
	"bitwise74/company-api/app/user"
	"bitwise74/company-api/internal"
	"bitwise74/company-api/pkg/middleware"
	"bitwise74/company-api/pkg/request"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewRouter(d *internal.Deps) *gin.Engine {
	request.UseJSONFieldNames()

	router := gin.New()

	router.Use(
		cors.New(corsConfig()),
		ginzap.RecoveryWithZap(zap.L(), true),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	jwt := middleware.NewJWTMiddleware(d.DB, d.Auth.Tokens())
	body := middleware.BodySizeLimiter(viper.GetInt64("security.max_body_size"))
	cached := newCache()

	m := router.Group("/api")
	if d.Limiter != nil {
		m.Use(d.Limiter.Middleware())
	}

	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", func(c *gin.Context) { root.Heartbeat(c, d) })
		m.GET("/heartbeat", func(c *gin.Context) { root.Heartbeat(c, d) })

		// GET /api/validate		-> Validates a JWT token
		m.GET("/validate", jwt, root.Validate)
	}

	u := m.Group("/users")
	{
		// GET /api/users		-> Returns the info of the logged in user
		u.GET("", jwt, func(c *gin.Context) { user.UserFetch(c, d) })

		// POST /api/users/register	-> Registers a new user
		u.POST("/register", body, func(c *gin.Context) { user.UserRegister(c, d) })

		// POST /api/users/login 	-> Logs in a user and returns a JWT token
		u.POST("/login", body, func(c *gin.Context) { user.UserLogin(c, d) })
	}

	detailed := []gin.HandlerFunc{}
	if !viper.GetBool("companies.detailed_public") {
		detailed = append(detailed, jwt)
	}

	co := m.Group("/companies")
	{
		// GET /api/companies		-> Returns a page of company summaries
		co.GET("", cached, func(c *gin.Context) { company.CompanyList(c, d) })

		// GET /api/companies/detailed	-> Returns a page of full company rows
		co.GET("/detailed", append(detailed, func(c *gin.Context) { company.CompanyListDetailed(c, d) })...)

		// GET /api/companies/:rank	-> Returns one company
		co.GET("/:rank", cached, func(c *gin.Context) { company.CompanyFetch(c, d) })

		// POST /api/companies		-> Adds a company
		co.POST("", jwt, body, func(c *gin.Context) { company.CompanyCreate(c, d) })

		// PUT /api/companies/:rank	-> Replaces a company
		co.PUT("/:rank", jwt, body, func(c *gin.Context) { company.CompanyUpdate(c, d) })

		// DELETE /api/companies/:rank	-> Deletes a company and its reviews
		co.DELETE("/:rank", jwt, func(c *gin.Context) { company.CompanyDelete(c, d) })
	}

	r := co.Group("/:rank/reviews")
	{
		// GET /api/companies/:rank/reviews		-> Returns a page of reviews of a company
		r.GET("", cached, func(c *gin.Context) { review.ReviewList(c, d) })

		// GET /api/companies/:rank/reviews/:reviewID	-> Returns one review
		r.GET("/:reviewID", cached, func(c *gin.Context) { review.ReviewFetch(c, d) })

		// POST /api/companies/:rank/reviews		-> Adds a review written by the caller
		r.POST("", jwt, body, func(c *gin.Context) { review.ReviewCreate(c, d) })

		// PUT /api/companies/:rank/reviews/:reviewID	-> Edits a review of the caller
		r.PUT("/:reviewID", jwt, body, func(c *gin.Context) { review.ReviewUpdate(c, d) })

		// DELETE /api/companies/:rank/reviews/:reviewID	-> Deletes a review of the caller
		r.DELETE("/:reviewID", jwt, func(c *gin.Context) { review.ReviewDelete(c, d) })
	}

	return router
}

func corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Location", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}

	origins := viper.GetStringSlice("host.cors")
	if len(origins) == 0 {
		// cors refuses to start without origins
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// newCache returns the response cache for public reads. With caching
// turned off it lets every request through.
func newCache() gin.HandlerFunc {
	ttl := time.Second * time.Duration(viper.GetInt("cache.ttl"))

	var store persist.CacheStore
	switch viper.GetString("cache.type") {
	case "memory":
		store = persist.NewMemoryStore(time.Minute)
	case "redis":
		store = persist.NewRedisStore(redis.NewClient(&redis.Options{
			Addr:     viper.GetString("redis.addr"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		}))
	}

	if store == nil || ttl <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return cache.CacheByRequestURI(store, ttl)
}
