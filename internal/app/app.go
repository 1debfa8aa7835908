// Package app provides shared application initialization logic used by both
// the server and desktop entry points.
package app

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/dirscope/dirscope/internal/config"
	"github.com/dirscope/dirscope/internal/handlers"
	"github.com/dirscope/dirscope/internal/history"
	"github.com/dirscope/dirscope/internal/scan"
	"github.com/dirscope/dirscope/internal/scheduler"
	"github.com/dirscope/dirscope/internal/services"
	"github.com/dirscope/dirscope/internal/webfs"
)

// ServerConfig contains options for creating the application server.
type ServerConfig struct {
	// Port to listen on. If 0, uses config default.
	Port int

	// BindAddress is the address to bind to. Defaults to "" (all
	// interfaces). Use "127.0.0.1" for desktop mode so only local
	// connections are accepted.
	BindAddress string

	// Version string for display.
	Version string
}

// Server wraps the HTTP server and associated resources.
type Server struct {
	HTTP      *http.Server
	Config    *config.Config
	History   *history.Store
	Engine    *scan.Scanner
	Scanner   *services.Scanner
	Scheduler *scheduler.Scheduler
}

// CreateServer initializes all application components and returns a Server.
// Call Server.Cleanup() when done to release resources.
func CreateServer(cfg ServerConfig) (*Server, error) {
	appCfg := config.Load()

	if cfg.Port > 0 {
		appCfg.Port = cfg.Port
	}

	log.Printf("dirscope starting...")
	log.Printf("  Database: %s", appCfg.DBPath)
	log.Printf("  Port: %d", appCfg.Port)
	log.Printf("  Cache: %d entries, %d bytes", appCfg.CacheMaxEntries, appCfg.CacheMaxBytes)

	hist, err := history.Open(appCfg.DBPath, appCfg.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	cache := scan.NewCache(scan.CacheConfig{
		MaxEntries: appCfg.CacheMaxEntries,
		MaxBytes:   appCfg.CacheMaxBytes,
	})
	engine := scan.NewScanner(cache)
	scanner := services.NewScanner(engine, hist)

	var sched *scheduler.Scheduler
	if appCfg.ScanSchedule != "" && len(appCfg.ScanPaths) > 0 {
		sched = scheduler.New(scanner, appCfg.ScanPaths, appCfg.ScanSchedule)
		if err := sched.Start(); err != nil {
			hist.Close()
			return nil, fmt.Errorf("failed to start scheduler: %w", err)
		}
	}

	h, err := handlers.New(scanner, appCfg, webfs.FS)
	if err != nil {
		if sched != nil {
			sched.Stop()
		}
		hist.Close()
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	handler := handlers.MetricsMiddleware(
		handlers.RateLimitMiddleware(appCfg.ScanRateLimit, appCfg.ScanRateBurst, mux),
	)

	addr := fmt.Sprintf("%s:%d", cfg.BindAddress, appCfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Scans of large trees can outlive any fixed timeout
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		HTTP:      server,
		Config:    appCfg,
		History:   hist,
		Engine:    engine,
		Scanner:   scanner,
		Scheduler: sched,
	}, nil
}

// Cleanup releases all resources held by the server.
func (s *Server) Cleanup() {
	if s.Scheduler != nil {
		s.Scheduler.Stop()
	}
	if s.History != nil {
		s.History.Close()
	}
}
