package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"performanceEvaluation/internal/auth"
	"performanceEvaluation/internal/config"
	"performanceEvaluation/internal/eval"
	"performanceEvaluation/internal/httpapi"
	"performanceEvaluation/internal/report"
	"performanceEvaluation/repository"
)

func main() {
	configPath := flag.String("config", "", "path to optional YAML config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("configuration loaded", zap.String("config", cfg.String()))

	// Open collections
	cols, err := repository.OpenCollections(cfg.Storage.DataDir, cfg.Storage.LockTimeout.Std())
	if err != nil {
		logger.Fatal("open collections", zap.Error(err))
	}

	users := repository.NewUserRepository(cols.Users)
	criteria := repository.NewCriterionRepository(cols.Criteria)
	evaluations := repository.NewEvaluationRepository(cols.Evaluations, cols.Users, cols.Criteria)

	authMgr := auth.NewManager(users, cfg.Auth.BcryptCost)
	engine := eval.NewEngine(criteria, evaluations)
	exporter, err := report.NewExporter(cfg.Storage.ExportsDir)
	if err != nil {
		logger.Fatal("init exporter", zap.Error(err))
	}

	// First-run admin bootstrap; change the default password immediately.
	bootCtx, bootCancel := context.WithTimeout(context.Background(), 10*time.Second)
	created, err := authMgr.EnsureAdmin(bootCtx, auth.NewUser{
		Username: cfg.Auth.AdminUsername,
		Password: cfg.Auth.AdminPassword,
		FullName: cfg.Auth.AdminFullName,
		Email:    cfg.Auth.AdminEmail,
	})
	bootCancel()
	if err != nil {
		logger.Fatal("ensure admin", zap.Error(err))
	}
	if created {
		logger.Warn("default admin account created; change its password", zap.String("username", cfg.Auth.AdminUsername))
	}

	// Start HTTP
	srv := httpapi.New(cfg, logger, users, criteria, evaluations, authMgr, engine, exporter)
	shutdown, err := httpapi.Start(cfg, logger, srv)
	if err != nil {
		logger.Fatal("start http", zap.Error(err))
	}
	logger.Info("http server listening", zap.String("address", cfg.HTTP.Address))

	// Wait for signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
