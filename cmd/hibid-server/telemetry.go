package main

import (
	"context"
	"log/slog"

	"hibid-backend/internal/components/telemetry"
	"hibid-backend/internal/config"
	"hibid-backend/lib/serviceutil"
)

func InitTelemetry(ctx context.Context, cfg config.Config) {
	telemetry.InitSlog(cfg.Verbose)

	if cfg.Verbose {
		slog.DebugContext(ctx, "verbose logging enabled")
	}
	if cfg.DumpDir != "" {
		slog.InfoContext(ctx, "dumping http exchanges", "dir", cfg.DumpDir)
	}

	tel, err := telemetry.Setup(ctx, "hibid-server", cfg.Telemetry)
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	go func() {
		<-ctx.Done()
		err := tel.Shutdown(context.Background())
		if err != nil {
			slog.Warn("shutdown telemetry", "err", err)
		}
	}()
	telemetry.InstrumentPerfStats(ctx)
}
