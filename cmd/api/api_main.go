package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	accountinterfaces "shamtool/internal/account/interfaces"
	mapdbinterfaces "shamtool/internal/mapdb/interfaces"
	"shamtool/internal/shared/infrastructure/db"
	"shamtool/internal/shared/logs"
	"shamtool/internal/shared/serverconfig"
	transporthttp "shamtool/internal/shared/transport/http"
	"shamtool/modules/kit/logx"
)

func main() {
	cfgPath := pflag.StringP("config", "c", "", "config file (default: $SHAMTOOL_CONFIG or configs/conf.yml searched upward)")
	pflag.Parse()

	serverconfig.Load(*cfgPath)
	conf := serverconfig.Snapshot()
	if err := logs.Init("api", conf.Log); err != nil {
		panic(err)
	}
	defer logs.Sync()
	logs.Info("conf loaded",
		zap.String("mysql", fmt.Sprintf("%s:%d/%s", conf.MySQL.Host, conf.MySQL.Port, conf.MySQL.DBName)),
		zap.Int("port", conf.HTTPServer.Port))

	gdb, err := db.Open(conf.MySQL)
	if err != nil {
		logs.Fatal("open mysql failed", zap.Error(err))
	}
	store := db.NewStore(gdb)
	baseLogger := logx.NewZapLogger(logs.Logger())

	host := conf.HTTPServer.Host
	if host == "" {
		host = "0.0.0.0"
	}
	addr := fmt.Sprintf("%s:%d", host, conf.HTTPServer.Port)

	httpServer := transporthttp.NewHttpServer(addr, nil, baseLogger, transporthttp.Options{
		AllowOrigins: conf.HTTPServer.AllowOrigins,
	})
	httpServer.Register(
		// the helper secret is re-read per request so a config reload takes effect
		mapdbinterfaces.New(gdb, store, baseLogger, func() string { return serverconfig.Snapshot().Helper.SecretPass }),
		accountinterfaces.New(gdb, conf.Discord, conf.JWT.TTL, baseLogger),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logs.Info("api server listening", zap.String("addr", addr))
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("api server start failed: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logs.Info("shutdown signal received, draining")
	case err := <-errCh:
		if err != nil {
			logs.Error("api server exited", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logs.Warn("http shutdown", zap.Error(err))
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
