package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"syng.no/allsang/cmd/web/internal/web"
	"syng.no/allsang/cmd/web/prefs"
	"syng.no/allsang/internal/config"
	"syng.no/allsang/internal/songbook"
	"syng.no/allsang/songs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting web service")

	conf, err := config.LoadConfig(ctx)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var songFS fs.FS = songs.FS
	if conf.SongsDir != "" {
		songFS = os.DirFS(conf.SongsDir)
	}
	catalog, err := songbook.Load(songFS)
	if err != nil {
		slog.Error("failed to load song catalog", "error", err)
		os.Exit(1)
	}

	prefsManager := prefs.NewManager(conf.SessionSecret)

	e, err := web.NewWebserver(catalog, prefsManager)
	if err != nil {
		slog.Error("failed to create webserver", "error", err)
		os.Exit(1)
	}

	addr := ":" + strconv.Itoa(conf.WebServerPort)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	slog.Info("Listening", "addr", addr)
	if err := e.Start(addr); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		// Echo returns an error on Shutdown; treat it as normal if context is done.
		if ctx.Err() != nil {
			return
		}
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
