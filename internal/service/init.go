package service

import (
	"fmt"

	"hibid-backend/internal/components/telemetry"
	"hibid-backend/internal/config"
	"hibid-backend/internal/scrapers/hibid"
	"hibid-backend/lib/restyutil"
)

// FromConfig wires the live fetcher, client and service. Name resolution
// goes through the system resolver.
func FromConfig(cfg config.Config, tel telemetry.API) (Service, error) {
	var dump restyutil.InstrumentOutput
	if cfg.DumpDir != "" {
		out, err := restyutil.NewFilesystemOutput(cfg.DumpDir)
		if err != nil {
			return Service{}, fmt.Errorf("create dump dir: %w", err)
		}
		dump = out
	}

	fetcher := hibid.NewHttpFetcher(cfg.Scraper, tel, dump)
	client := hibid.NewClient(cfg.Scraper, fetcher, nil, tel)
	return NewService(client, cfg.Api.MaxPage, tel), nil
}
