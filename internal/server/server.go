package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"orderapi/internal/config"
	"orderapi/internal/middleware"
	"orderapi/pkg/logger"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Pinger はヘルスチェック用。DBの疎通確認に使う。
type Pinger func(ctx context.Context) error

type Server struct {
	echo *echo.Echo
	cfg  config.Config
	log  logger.Logger
}

func New(cfg config.Config, log logger.Logger, h Handlers, ping Pinger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = jsonErrorHandler(log)

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	// 認証なし。全オリジン許可（ヘッダは要求されたものをそのまま許可）
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPost,
			http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
	}))

	registerRoutes(e, cfg, h, ping)

	return &Server{echo: e, cfg: cfg, log: log}
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks until the server stops. A graceful Shutdown returns nil.
func (s *Server) Start() error {
	addr := ":" + s.cfg.Port
	s.log.Infof("HTTP server started on %s (env=%s)", addr, s.cfg.Env)

	err := s.echo.Start(addr)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// jsonErrorHandler はechoのエラー（ルート無し、405、panic）も {"error": ...} で返す
func jsonErrorHandler(log logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := "internal error"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(code)
			}
		}
		if code >= http.StatusInternalServerError {
			log.Errorf(err, "unhandled error on %s %s", c.Request().Method, c.Request().URL.Path)
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(code)
		} else {
			werr = c.JSON(code, map[string]string{"error": msg})
		}
		if werr != nil {
			log.Warnf("write error response: %v", werr)
		}
	}
}

const healthTimeout = 2 * time.Second
