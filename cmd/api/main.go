package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	httpadp "sacco-lending/internal/adapter/http"
	"sacco-lending/internal/adapter/middleware"
	"sacco-lending/internal/adapter/repository/mysql"
	"sacco-lending/internal/config"
	"sacco-lending/internal/infrastructure/cache"
	"sacco-lending/internal/infrastructure/db"
	"sacco-lending/internal/infrastructure/logger"
	"sacco-lending/internal/usecase/lifecycle"
	"sacco-lending/internal/usecase/loan"
	"sacco-lending/internal/usecase/portfolio"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}

	sqlLevel := gormlogger.Warn
	if cfg.LogLevel == "debug" {
		sqlLevel = gormlogger.Info
	}
	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN(), db.WithSQLLog(sqlLevel), db.WithLogger(log))
	if err != nil {
		log.Fatal("open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	if cfg.AutoMigrate {
		if err := mysql.AutoMigrate(gdb); err != nil {
			log.Fatal("auto migrate", zap.Error(err))
		}
		log.Info("schema migrated")
	}

	rdb, err := cache.OpenRedis(context.Background(), cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal("open redis", zap.Error(err))
	}
	defer func() { _ = rdb.Close() }()

	// repos and usecases
	loans := mysql.NewLoanRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	handlers := httpadp.Handlers{
		Health:    httpadp.NewHandler(db.Pinger(gdb)),
		Loans:     httpadp.NewLoanHandler(loan.NewUsecase(loans, tx, log)),
		Lifecycle: httpadp.NewLifecycleHandler(lifecycle.NewUsecase(tx, log)),
		Portfolio: httpadp.NewPortfolioHandler(portfolio.NewUsecase(loans, log)),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.RequestID(), middleware.RequestLogger(log), echomw.Recover())

	idem := middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log)
	httpadp.Register(e, handlers, idem)

	addr := ":" + cfg.AppPort
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("db_driver", cfg.DBDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	log.Info("bye")
}
