package main

import (
	"context"
	"os/exec"
	"runtime"

	"github.com/dirscope/dirscope/internal/app"
	"github.com/dirscope/dirscope/internal/history"
	"github.com/dirscope/dirscope/internal/scan"
)

// App holds the Wails application context and exposes the scan and history
// commands callable from the frontend.
type App struct {
	ctx    context.Context
	server *app.Server
}

// NewApp creates a new App instance backed by the internal server.
func NewApp(server *app.Server) *App {
	return &App{server: server}
}

// startup is called when the app starts.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// ScanDirectory scans path and returns the size-sorted result. Results for
// unchanged directories come from the cache unless forceRefresh is set.
func (a *App) ScanDirectory(path string, forceRefresh bool) (*scan.Result, error) {
	return a.server.Scanner.Scan(path, forceRefresh)
}

// GetHistory returns past scans, newest first.
func (a *App) GetHistory() ([]*history.Record, error) {
	return a.server.Scanner.History()
}

// GetHistoryItem returns the most recent recorded scan of path, or nil when
// the path has no history.
func (a *App) GetHistoryItem(path string) (*scan.Result, error) {
	return a.server.Scanner.HistoryItem(path)
}

// ClearHistory removes all history records.
func (a *App) ClearHistory() error {
	return a.server.Scanner.ClearHistory()
}

// OpenInExplorer reveals path in the system file manager.
func (a *App) OpenInExplorer(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", "-R", path) // -R reveals in Finder
	case "windows":
		cmd = exec.Command("explorer", "/select,", path)
	default: // Linux
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}
