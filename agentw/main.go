package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agentw/agentw/config"
	"agentw/agentw/controllers"
	"agentw/agentw/routes"
	"agentw/agentw/services/agent"
	"agentw/agentw/sources/psql"
	"agentw/agentw/sources/psql/dao"
	"agentw/agentw/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	walletDAO := dao.NewWalletDAO(db.DB)
	sessionDAO := dao.NewSessionDAO(db.DB)
	chatDAO := dao.NewChatMessageDAO(db.DB)
	agentClient := agent.NewClient(cfg)

	chatCtrl := controllers.NewChatController(walletDAO, sessionDAO, chatDAO, agentClient, cfg.ContextMaxTurns)
	agentCtrl := controllers.NewAgentController(agentClient, cfg.AgentNetwork)
	healthCtrl := controllers.NewHealthController(walletDAO, agentClient, cfg.RedactedDatabaseURL())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", healthCtrl.HealthCheck)
	r.Get("/debug", healthCtrl.Debug)
	r.Mount("/api/chat", routes.ChatRoutes(chatCtrl))
	r.Mount("/api/agent", routes.AgentRoutes(agentCtrl))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
