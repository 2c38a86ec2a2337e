package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"finaudit/pkg/factory"
	"finaudit/pkg/tracing"
)

func main() {
	appFactory, err := factory.NewFactory()
	if err != nil {
		fmt.Printf("Failed to build application factory: %v\n", err)
		os.Exit(1)
	}
	defer appFactory.Close()

	log := appFactory.GetLogger()
	cfg := appFactory.GetConfig()

	log.Info("Starting financial audit daemon", map[string]interface{}{
		"env":    cfg.AppEnv,
		"driver": cfg.Database.Driver,
	})

	if cfg.Tracing.Enabled {
		shutdownTracing, err := tracing.Init(context.Background(), "finaudit", cfg.Tracing.Endpoint)
		if err != nil {
			log.Fatal("Tracing initialization failed", map[string]interface{}{"error": err.Error()})
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracing(ctx); err != nil {
				log.Error("Tracing shutdown failed", map[string]interface{}{"error": err.Error()})
			}
		}()
	}

	if err := appFactory.GetMigrationService().RunMigrations(); err != nil {
		log.Fatal("Migrations failed", map[string]interface{}{"error": err.Error()})
	}

	accounts, err := appFactory.GetAccountRepository().FindAll()
	if err != nil {
		log.Fatal("Account lookup failed", map[string]interface{}{"error": err.Error()})
	}
	if len(accounts) == 0 {
		log.Warn("Ledger has no accounts; compliance checks will run against an empty balance sheet", map[string]interface{}{})
	} else {
		log.Info("Ledger loaded", map[string]interface{}{"accounts": len(accounts)})
	}

	validationService := appFactory.GetValidationService()
	complianceService := appFactory.GetComplianceService()

	// Validate everything already in the ledger before the audit loop
	// starts.
	journals, err := appFactory.GetJournalRepository().FindAll()
	if err != nil {
		log.Fatal("Journal lookup failed", map[string]interface{}{"error": err.Error()})
	}
	if len(journals) > 0 {
		processed, failed, err := validationService.ValidateBatch(journals)
		if err != nil {
			log.Error("Initial batch validation failed", map[string]interface{}{"error": err.Error()})
		} else {
			log.Info("Initial batch validation finished", map[string]interface{}{
				"processed": processed,
				"failed":    failed,
			})
		}
	}

	metricsServer := &http.Server{
		Addr:    ":" + cfg.MetricsPort,
		Handler: promhttp.Handler(),
	}
	go func() {
		log.Info("Metrics endpoint listening", map[string]interface{}{"port": cfg.MetricsPort})
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Metrics endpoint failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	runAudit := func() {
		report, err := complianceService.ExportComplianceReport("json")
		if err != nil {
			log.Error("Compliance report export failed", map[string]interface{}{"error": err.Error()})
			return
		}

		out, ok := report.(string)
		if !ok {
			encoded, err := json.Marshal(report)
			if err != nil {
				log.Error("Compliance report serialization failed", map[string]interface{}{"error": err.Error()})
				return
			}
			out = string(encoded)
		}
		fmt.Println(out)
	}

	runAudit()

	ticker := time.NewTicker(cfg.Engine.AuditInterval)
	defer ticker.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			runAudit()
		case <-quit:
			log.Info("Shutting down", map[string]interface{}{})

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := metricsServer.Shutdown(ctx); err != nil {
				log.Error("Metrics endpoint shutdown failed", map[string]interface{}{"error": err.Error()})
			}
			cancel()

			validationService.Shutdown()
			log.Info("Shutdown complete", map[string]interface{}{})
			return
		}
	}
}
