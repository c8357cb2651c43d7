/*-------------------------------------------------------------------------
 *
 * main.go
 *    Main entry point for the InheritX backend server
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/cmd/inheritx-server/main.go
 *
 *-------------------------------------------------------------------------
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/skill-mind/InheritX-Backend/internal/api"
	"github.com/skill-mind/InheritX-Backend/internal/approval"
	"github.com/skill-mind/InheritX-Backend/internal/audit"
	"github.com/skill-mind/InheritX-Backend/internal/config"
	"github.com/skill-mind/InheritX-Backend/internal/db"
	"github.com/skill-mind/InheritX-Backend/internal/kyc"
	"github.com/skill-mind/InheritX-Backend/internal/metrics"
	"github.com/skill-mind/InheritX-Backend/internal/notifications"
)

var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

func main() {
	var (
		showVersion      = flag.Bool("version", false, "Show version information")
		showVersionShort = flag.Bool("v", false, "Show version information (short)")
		configPath       = flag.String("c", "", "Path to configuration file")
		configPathLong   = flag.String("config", "", "Path to configuration file")
		showHelp         = flag.Bool("help", false, "Show help message")
		showHelpShort    = flag.Bool("h", false, "Show help message (short)")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "InheritX Server - inheritance plan approval backend\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                    Start server with default configuration\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -c config.yaml     Start server with custom config file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --version          Show version information\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nConfiguration:\n")
		fmt.Fprintf(os.Stderr, "  Configuration can be provided via:\n")
		fmt.Fprintf(os.Stderr, "  - Command line flag: -c or --config\n")
		fmt.Fprintf(os.Stderr, "  - Environment variable: CONFIG_PATH\n")
		fmt.Fprintf(os.Stderr, "  - Environment variables (see config package for details)\n")
	}
	flag.Parse()

	/* Handle version flag */
	if *showVersion || *showVersionShort {
		fmt.Printf("inheritx-server version %s\n", version)
		fmt.Printf("Build date: %s\n", buildDate)
		fmt.Printf("Git commit: %s\n", gitCommit)
		os.Exit(0)
	}

	/* Handle help flag */
	if *showHelp || *showHelpShort {
		flag.Usage()
		os.Exit(0)
	}

	/* Load configuration */
	cfg := config.DefaultConfig()

	/* Determine config path - command line flag takes precedence over environment variable */
	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = *configPathLong
	}
	if cfgPath == "" {
		cfgPath = os.Getenv("CONFIG_PATH")
	}

	if cfgPath != "" {
		var err error
		cfg, err = config.LoadConfig(cfgPath)
		if err != nil {
			fmt.Printf("Failed to load config: %v, using defaults\n", err)
		}
	} else {
		/* Load from environment variables if no config file */
		config.LoadFromEnv(cfg)
	}

	/* Initialize logging */
	metrics.InitLogging(cfg.Logging.Level, cfg.Logging.Format)

	/* Connect to database */
	database, err := db.NewDB(cfg.Database.ConnString(), db.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime.Std(),
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime.Std(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to connect to database: %v\n", err)
		fmt.Fprintf(os.Stderr, "Connection string: host=%s port=%d user=%s dbname=%s\n",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Database)
		os.Exit(1)
	}
	defer database.Close()

	/* Run migrations */
	migrationRunner, err := db.NewMigrationRunner(database.DB, cfg.Database.MigrationsDir)
	if err != nil {
		fmt.Printf("Warning: Skipping migrations: %v\n", err)
	} else if err := migrationRunner.Run(context.Background()); err != nil {
		fmt.Printf("Warning: Migration failed: %v\n", err)
	}

	/* Initialize components */
	queries := db.NewQueries(database.DB)
	queries.SetConnInfoFunc(database.GetConnInfoString)

	approvalService := approval.NewService(database.DB)
	verifier := kyc.NewVerifier(queries)
	recorder := audit.NewRecorder(queries)
	emailService := notifications.NewEmailService(
		cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)

	/* Initialize API */
	handlers := api.NewHandlers(queries, approvalService, verifier, recorder, emailService)

	/* Setup router */
	router := mux.NewRouter()
	router.Use(api.RequestIDMiddleware)
	router.Use(api.CORSMiddleware)
	router.Use(api.SecurityHeadersMiddleware)
	router.Use(api.LoggingMiddleware)
	router.Use(api.IdentityMiddleware)

	/* API routes */
	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	apiRouter.HandleFunc("/plans", handlers.CreatePlan).Methods("POST")
	apiRouter.HandleFunc("/plans", handlers.ListPlans).Methods("GET")
	apiRouter.HandleFunc("/plans/{id}", handlers.GetPlan).Methods("GET")
	apiRouter.HandleFunc("/plans/{id}", handlers.UpdatePlan).Methods("PUT")
	apiRouter.HandleFunc("/plans/{id}", handlers.DeletePlan).Methods("DELETE")
	apiRouter.HandleFunc("/plans/{id}/approvals", handlers.RequestApprovals).Methods("POST")
	apiRouter.HandleFunc("/plans/{id}/approvals", handlers.GetApprovalStatus).Methods("GET")
	apiRouter.HandleFunc("/plans/{id}/execute", handlers.ExecutePlan).Methods("POST")
	apiRouter.HandleFunc("/approvals/{id}", handlers.GetApproval).Methods("GET")
	apiRouter.HandleFunc("/approvals/{id}", handlers.SubmitApproval).Methods("PUT")
	apiRouter.HandleFunc("/kyc", handlers.SubmitKyc).Methods("POST")
	apiRouter.HandleFunc("/kyc", handlers.GetKyc).Methods("GET")
	apiRouter.HandleFunc("/kyc/status", handlers.UpdateKycStatus).Methods("PUT")
	apiRouter.HandleFunc("/kyc/verified", handlers.GetKycVerified).Methods("GET")
	apiRouter.HandleFunc("/kyc/{id:[0-9]+}", handlers.GetKycByID).Methods("GET")
	apiRouter.HandleFunc("/withdrawals", handlers.CreateWithdrawal).Methods("POST")
	apiRouter.HandleFunc("/withdrawals", handlers.ListWithdrawals).Methods("GET")
	apiRouter.HandleFunc("/withdrawals/{id}", handlers.GetWithdrawal).Methods("GET")
	apiRouter.HandleFunc("/withdrawals/{id}", handlers.UpdateWithdrawal).Methods("PUT")
	apiRouter.HandleFunc("/withdrawals/{id}", handlers.DeleteWithdrawal).Methods("DELETE")
	apiRouter.HandleFunc("/notifications", handlers.ListNotifications).Methods("GET")
	apiRouter.HandleFunc("/notifications/read-all", handlers.MarkAllNotificationsRead).Methods("PUT")
	apiRouter.HandleFunc("/notifications/{id}/read", handlers.MarkNotificationRead).Methods("PUT")
	apiRouter.HandleFunc("/notifications/{id}", handlers.DeleteNotification).Methods("DELETE")
	apiRouter.HandleFunc("/faqs", handlers.CreateFAQ).Methods("POST")
	apiRouter.HandleFunc("/faqs", handlers.ListFAQs).Methods("GET")
	apiRouter.HandleFunc("/faqs/{id}", handlers.GetFAQ).Methods("GET")
	apiRouter.HandleFunc("/faqs/{id}", handlers.UpdateFAQ).Methods("PUT")
	apiRouter.HandleFunc("/faqs/{id}", handlers.DeleteFAQ).Methods("DELETE")
	apiRouter.HandleFunc("/tickets", handlers.CreateTicket).Methods("POST")
	apiRouter.HandleFunc("/tickets", handlers.ListTickets).Methods("GET")
	apiRouter.HandleFunc("/tickets/{id}", handlers.GetTicket).Methods("GET")
	apiRouter.HandleFunc("/tickets/{id}", handlers.UpdateTicketStatus).Methods("PUT")
	apiRouter.HandleFunc("/activities", handlers.ListActivities).Methods("GET")

	/* Public approver routes: approvers act through the approval ID alone */
	publicRouter := router.PathPrefix("/api/v1/public").Subrouter()
	publicRouter.HandleFunc("/approvals/{id}", handlers.GetApproval).Methods("GET")
	publicRouter.HandleFunc("/approvals/{id}", handlers.SubmitApproval).Methods("PUT")
	publicRouter.HandleFunc("/faqs", handlers.ListFAQs).Methods("GET")
	publicRouter.HandleFunc("/faqs/{id}", handlers.GetFAQ).Methods("GET")

	/* Health check */
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := database.HealthCheck(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	/* Metrics endpoint (no auth required) */
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	/* Report pool stats to Prometheus */
	poolStatsDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				open, idle, inUse := database.GetPoolStats()
				metrics.RecordDBPoolStats(cfg.Database.Database, open, idle, inUse)
			case <-poolStatsDone:
				return
			}
		}
	}()
	defer close(poolStatsDone)

	/* Start server */
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
	}

	/* Graceful shutdown */
	go func() {
		fmt.Printf("Server starting on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "FATAL: Server failed to start on %s: %v\n", addr, err)
			os.Exit(1)
		}
	}()

	/* Wait for interrupt signal */
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		fmt.Printf("Server forced to shutdown: %v\n", err)
	}

	fmt.Println("Server exited")
}
