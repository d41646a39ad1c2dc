package main

import (
	"flag"

	"hibid-backend/internal/components/telemetry"
	"hibid-backend/internal/config"
	"hibid-backend/internal/service"
	"hibid-backend/lib/serviceutil"
)

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	configPath := flag.String("config", "config.json5", "Path to the config file, a missing file means defaults.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	cfg, err := config.Load(*configPath)
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	cfg.Verbose = cfg.Verbose || *verbose

	InitTelemetry(ctx, cfg)

	svc, err := service.FromConfig(cfg, telemetry.SlogAPI{})
	if err != nil {
		serviceutil.Fatal("init service", err)
	}

	err = serviceutil.StartHttpServer(ctx, cfg.Port, svc.Handler())
	if err != nil {
		serviceutil.Fatal("serve", err)
	}
}
