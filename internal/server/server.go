package server

import (
	"context"
	"errors"
	"net/http"

	"cosmossdk.io/log"
	"github.com/labstack/echo/v4"

	"github.com/productscience/tokenvesting/internal/devnet"
)

type Server struct {
	e      *echo.Echo
	chain  *devnet.Chain
	logger log.Logger
}

func NewServer(chain *devnet.Chain, logger log.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		e:      e,
		chain:  chain,
		logger: logger.With("module", "server"),
	}

	e.Use(LoggingMiddleware(s.logger))
	g := e.Group("/v1/")

	g.GET("status", s.getStatus)

	g.GET("schedule", s.getSchedule)
	g.GET("schedule/vested", s.getVestedAt)
	g.POST("schedule/withdraw", s.postWithdraw)
	g.POST("schedule/revoke", s.postRevoke)

	g.POST("clock/advance", s.postClockAdvance)

	g.GET("balances/:address", s.getBalances)
	g.GET("genesis", s.getGenesis)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

// Start blocks until the server stops. A clean Shutdown returns nil.
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting HTTP server", "address", addr)
	if err := s.e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
