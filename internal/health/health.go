// Package health exposes a small HTTP surface for liveness probes.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"shopbot/core/logger"
	"shopbot/internal/order"
	"shopbot/internal/session"

	"log/slog"
)

// Server serves the liveness endpoint plus a one-line status banner.
type Server struct {
	echo     *echo.Echo
	shopName string
	sessions *session.Store
	orders   *order.Registry
}

func NewServer(shopName string, sessions *session.Store, orders *order.Registry) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{echo: e, shopName: shopName, sessions: sessions, orders: orders}

	e.GET("/", s.banner)
	e.GET("/healthz", s.healthz)
	return s
}

func (s *Server) banner(c echo.Context) error {
	return c.String(http.StatusOK, s.shopName+" bot is running")
}

func (s *Server) healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
		"orders":   s.orders.Len(),
	})
}

// Start listens on addr in a background goroutine.
func (s *Server) Start(addr string) {
	go func() {
		if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.L.Error("health server stopped",
				slog.String("event", "health.stop"),
				slog.Any("error", err),
			)
		}
	}()
	logger.L.Info("health server listening",
		slog.String("event", "health.start"),
		slog.String("addr", addr),
	)
}

// Shutdown drains the listener.
func (s *Server) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.echo.Shutdown(ctx); err != nil {
		logger.L.Warn("health server shutdown failed", slog.Any("error", err))
	}
}
