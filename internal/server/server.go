package server

import (
	"github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nautica/battleship-zk/internal/auditlog"
	"github.com/nautica/battleship-zk/internal/controller"
	"github.com/nautica/battleship-zk/internal/env"
	"github.com/nautica/battleship-zk/internal/service"
)

// Application wires the HTTP lobby: echo router, JWT auth, rate
// limiting, and the controller/service stack backing it.
type Application struct {
	E    *echo.Echo
	Ctrl *controller.AppController
	Cfg  *env.Config
}

// Setup builds the echo router and every middleware/route. Callers run
// app.Setup() once, then app.E.Start(":"+app.Cfg.Port).
func (app *Application) Setup() error {
	cfg, err := env.LoadServerConfig()
	if err != nil {
		return err
	}
	app.Cfg = cfg

	identity := service.NewIdentityService(cfg.JWTSecret)
	notifier := service.NewNotificationService()
	matches := service.NewMatchService(notifier, auditlog.New("receipts"))
	app.Ctrl = controller.NewAppController(identity, matches, matches, notifier)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: newRateLimiterStore(cfg.RateLimit),
	}))

	h := NewEchoHandler(app.Ctrl)
	e.POST("/login", h.Login)

	jwtConfig := echojwt.Config{SigningKey: []byte(cfg.JWTSecret)}
	authed := e.Group("", echojwt.WithConfig(jwtConfig), RequirePlayerID)

	e.GET("/matches", h.ListMatches)
	authed.POST("/matches", h.HostMatch)
	authed.POST("/matches/:id/join", h.JoinMatch)
	authed.GET("/matches/:id", h.GetState)
	authed.POST("/matches/:id/place", h.PlaceShip)
	authed.POST("/matches/:id/attack", h.Attack)
	e.GET("/matches/:id/ws", h.Spectate)

	app.E = e
	return nil
}
