package main

import (
	"log"

	"github.com/gin-gonic/gin"

	httpapi "mankomania-server/internal/api/http"
	"mankomania-server/internal/api/ws"
	"mankomania-server/internal/config"
	"mankomania-server/internal/horserace"
	"mankomania-server/internal/logging"
	"mankomania-server/internal/session"
	"mankomania-server/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	gin.SetMode(cfg.GinMode)

	mem := store.NewMemoryStore()
	rm := session.NewManager(mem, cfg, nil, logger.Named("session"))
	hub := ws.NewHub(rm, logger.Named("ws"))
	rm.SetBroadcaster(hub)

	r := httpapi.SetupRouter(rm, mem, hub, horserace.NewService(), cfg, logger.Named("http"))

	logger.Infow("listening", "addr", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		logger.Fatalw("server stopped", "err", err)
	}
}
