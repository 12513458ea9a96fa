package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"church-site-backend/internal/client"
	"church-site-backend/internal/config"
	"church-site-backend/internal/repository"
	"church-site-backend/internal/server"
	"church-site-backend/internal/service"
	"church-site-backend/internal/worker"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		log.WithError(err).Fatal("failed to parse config")
	}

	setupLogger(cfg.Log)

	if cfg.Pesapal.CallbackURL == "" {
		cfg.Pesapal.CallbackURL = cfg.BaseURL + "/payment/callback"
	}

	db := client.InitMysqlClient(cfg.DatabaseURL)
	pesapalClient := client.NewPesapalClient(&cfg.Pesapal)

	objectStore, err := client.NewS3ObjectStore(context.Background(), &cfg.Storage)
	if err != nil {
		log.WithError(err).Fatal("failed to init object store")
	}

	donationRepo := repository.NewDonationRepository(db)
	prayerRepo := repository.NewPrayerRepository(db)
	contentRepo := repository.NewContentRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	notifier := service.NewSMTPNotifier(cfg.SMTP)

	donationService := service.NewDonationService(pesapalClient, donationRepo, notifier, cfg.Donation, cfg.Pesapal)
	prayerService := service.NewPrayerService(prayerRepo, notifier)
	contentService := service.NewContentService(contentRepo, objectStore)
	authService := service.NewAuthService(adminRepo, cfg.Admin)

	srv := server.NewServer(donationService, prayerService, contentService, authService, pesapalClient)

	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	if cfg.Sweeper.Enabled {
		reconciler := worker.NewReconciler(donationService, donationRepo, cfg.Sweeper)
		go reconciler.Run(sweeperCtx)
	}

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	log.WithField("addr", serverAddr).Info("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("Signal received, starting graceful shutdown...")

	stopSweeper()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("HTTP server shutdown error")
	}
}

func setupLogger(logCfg config.Log) {
	if logCfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(logCfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stdout)
}
