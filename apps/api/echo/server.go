package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	"github.com/trezcool/campus/core"
	"github.com/trezcool/campus/core/catalog"
	"github.com/trezcool/campus/core/product"
	"github.com/trezcool/campus/core/student"
	appfs "github.com/trezcool/campus/fs"
)

type (
	ServerDeps struct {
		dig.In

		Conf       *core.Config
		Logger     core.Logger
		StudentSvc student.Service
		ProductSvc product.Service
		Catalogs   []catalog.Source `group:"catalogs"`
		Validate   *validator.Validate
		Translator ut.Translator
	}

	// Server keeps its deps in a field: dig cannot provide a type embedding dig.In.
	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		metrics  *metrics
		sessions *cache.Cache
		shutdown chan os.Signal
		errors   chan error
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		metrics:  newMetrics(),
		sessions: cache.New(deps.Conf.Catalog.SessionTTL, deps.Conf.Catalog.CleanupInterval),
		shutdown: make(chan os.Signal, 1),
		errors:   make(chan error, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	renderer, err := newTemplateRenderer(appfs.FS)
	if err != nil {
		s.deps.Logger.Fatal("parsing templates", err)
	}

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.Conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(s.deps.Conf.Debug || s.deps.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(s.metrics.middleware)

	s.app.HideBanner = true
	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Renderer = renderer
	s.app.Debug = s.deps.Conf.Debug

	csrf := csrfMiddleware(s.deps.Conf)

	s.app.GET("/", s.home)
	s.app.GET("/metrics", s.metrics.handler())

	api := s.app.Group("/api")
	registerProductAPI(api, s.deps.ProductSvc, s.deps.Validate)
	registerStudentMVC(s.app.Group("/students", csrf), s.deps.StudentSvc, s.deps.Validate, s.deps.Translator)
	registerCatalogs(s.app, api, csrf, s.deps.Catalogs, s.sessions, s.metrics)
}

// Start listens on the configured address. Listening errors are sent to Errors.
func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.deps.Conf.AppName+"!")
}
