package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "busconductor/internal/config"
	"busconductor/internal/db"
	router "busconductor/internal/http"
	"busconductor/internal/http/handlers"
	"busconductor/internal/llm"
	"busconductor/internal/repositories"
	"busconductor/internal/services"
	"busconductor/internal/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := intconfig.LoadEnv()
	utils.ConfigureLogger(env.LogLevel, env.LogFormat)
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	store, err := intconfig.OpenDB(env)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to store")
	}
	defer store.DB.Close()
	log.WithField("driver", store.Dialect).Info("connected to store")
	if missing, err := store.MissingTables(context.Background(), db.RequiredTables...); err == nil && len(missing) > 0 {
		log.WithField("tables", missing).Warn("store schema is incomplete")
	}

	verifier, err := services.VerifierForScheme(env.PasswordScheme)
	if err != nil {
		log.WithError(err).Fatal("invalid AUTH_PASSWORD_SCHEME")
	}

	var geminiOpts []llm.GeminiOption
	if env.GeminiBaseURL != "" {
		geminiOpts = append(geminiOpts, llm.WithBaseURL(env.GeminiBaseURL))
	}
	if env.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY is not set; assistant endpoints will fail")
	}

	h := &handlers.Handlers{
		Routes:     repositories.RouteRepository{Store: store},
		Tickets:    repositories.TicketRepository{Store: store},
		Conductors: repositories.ConductorRepository{Store: store},
		History:    repositories.ChatRepository{Store: store},
		Model:      llm.NewGemini(env.GeminiAPIKey, env.GeminiModel, geminiOpts...),
		Classifier: services.KeywordClassifier{},
		Verifier:   verifier,
		Store:      store,
	}

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           router.NewRouter(env, h),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Infof("server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server shutdown failed")
	}

	log.Info("server stopped")
}
