package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/portfolio/contact-api/internal/config"
	"github.com/portfolio/contact-api/internal/handler"
	"github.com/portfolio/contact-api/internal/logging"
	"github.com/portfolio/contact-api/internal/repository"
	"github.com/portfolio/contact-api/internal/service"
	"github.com/portfolio/contact-api/pkg/mail"
)

func main() {
	_ = godotenv.Load()
	logging.Setup(os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load(os.Getenv)
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}

	ctx := context.Background()
	repo, closeStore, err := repository.OpenContactRepository(ctx, cfg.Store)
	if err != nil {
		logging.Fatal("failed to open contact store", "error", err)
	}
	defer closeStore()

	mailer := mail.NewClient(mail.Config{
		Host:               cfg.Mail.Server,
		Port:               cfg.Mail.Port,
		Username:           cfg.Mail.Username,
		Password:           cfg.Mail.Password,
		UseTLS:             cfg.Mail.UseTLS,
		UseSSL:             cfg.Mail.UseSSL,
		InsecureSkipVerify: cfg.Mail.InsecureSkipVerify,
		From:               cfg.Mail.DefaultSender,
		To:                 cfg.Mail.Recipient,
		Location:           cfg.Location,
		Timeout:            cfg.Mail.Timeout,
	})

	contactService := service.NewContactService(repo, mailer, cfg.Location)

	h := handler.New(cfg.AllowedOrigin)
	contactHandler := handler.NewContactHandler(contactService)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.NewRouter(h, contactHandler),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Submissions wait inline for the relay.
		WriteTimeout: cfg.Mail.Timeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Mail.Timeout+5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}
