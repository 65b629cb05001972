package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/sartorproj/inflasi/config"
	"github.com/sartorproj/inflasi/dashboard"
	"github.com/sartorproj/inflasi/dataset"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[main] config: %v", err)
	}

	var src dataset.Source = dataset.CSVSource{Path: cfg.DataPath}
	if cfg.Postgres.DSN != "" {
		src = dataset.PostgresSource{
			DSN:        cfg.Postgres.DSN,
			Table:      cfg.Postgres.Table,
			DateColumn: cfg.Postgres.DateColumn,
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	frame, err := dataset.NewLoader().Load(ctx, src)
	cancel()
	if err != nil {
		log.Fatalf("[main] load data: %v", err)
	}

	app, err := dashboard.New(frame, dashboard.Options{
		TargetColumn: cfg.TargetColumn,
		Suggest:      cfg.Suggest.Enabled,
	})
	if err != nil {
		log.Fatalf("[main] %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("[main] serving %d periods on %s", frame.Len(), cfg.Addr)
	log.Fatal(srv.ListenAndServe())
}
