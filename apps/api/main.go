package main

import (
	"context"
	"expvar"
	"flag"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"

	"github.com/jmoiron/sqlx"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/trezcool/campus/apps/api/di"
	echoapi "github.com/trezcool/campus/apps/api/echo"
	"github.com/trezcool/campus/core"
)

func main() {
	graph := flag.Bool("graph", false, "print the dependency graph and exit")
	flag.Parse()

	c := di.New()
	if *graph {
		must(di.Visualize(c))
		return
	}
	must(c.Invoke(run))
}

type runParams struct {
	dig.In

	Conf          *core.Config
	Logger        core.Logger
	DBLoggerParam di.DBLoggerParam
	ZapLogger     *zap.Logger
	DB            *sqlx.DB
	Server        *echoapi.Server
}

func run(p runParams) {
	logger, server := p.Logger, p.Server
	defer func() { _ = p.ZapLogger.Sync() }()

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", p.Conf.Build))

	defer func() {
		if err := p.DB.Close(); err != nil {
			p.DBLoggerParam.Logger.Fatal("Failed to close", err)
		}
	}()
	defer logger.Info("Application stopped")

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(p.Conf.Build)
	expvar.NewString("env").Set(p.Conf.Env)

	go func() {
		if err := http.ListenAndServe(p.Conf.Server.DebugAddress, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), p.Conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shut down and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
