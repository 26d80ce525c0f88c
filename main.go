package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/soar/joymap/internal/config"
	"github.com/soar/joymap/internal/console"
	"github.com/soar/joymap/internal/gamepad"
	"github.com/soar/joymap/internal/hub"
	"github.com/soar/joymap/internal/prefs"
	"github.com/soar/joymap/internal/server"
	"github.com/soar/joymap/internal/tray"
)

// os.Interrupt is Ctrl+C on every platform
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	interactive := console.Interactive()

	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	store, err := prefs.Load(cfg.Prefs)
	if err != nil {
		// carry on with defaults; saving will overwrite the broken file
		log.Printf("Warning: %v", err)
		store = prefs.New(cfg.Prefs)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	// SDL replaces the console handler during init, so register ours again
	// once it is up
	interrupted := make(chan struct{})
	reregister := console.NotifyInterrupt(interrupted)

	reader := gamepad.NewReader(store, gamepad.Options{
		Poll:      cfg.Poll,
		Rumble:    cfg.Rumble,
		GamepadDB: cfg.GamepadDB,
		OnInit:    reregister,
	})

	h := hub.NewHub()
	go h.Run()

	broadcaster := hub.NewBroadcaster(h, reader, reader.Changes())
	go broadcaster.Run()

	srv := server.New(h, broadcaster, reader, getFrontendFS(), cfg.Addr)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	log.Printf("joymap started: %s", cfg.URL())

	shutdownRequested := make(chan struct{})

	// a double-clicked daemon has no terminal to stop it from, so it always
	// gets a tray icon
	if cfg.Tray || !interactive {
		go func() {
			t := tray.New(cfg.URL(), reader.Submit, reader.CurrentState, func() {
				close(shutdownRequested)
			})
			t.Run(tray.Icon())
		}()
	}
	if interactive {
		log.Println("Press Ctrl+C to exit")
	}

	// the reader locks its own OS thread for SDL
	readerErrCh := make(chan error, 1)
	go func() {
		readerErrCh <- reader.Run(ctx)
	}()

	var readerErr error
	readerStopped := false

	select {
	case <-sigCh:
		log.Println("Shutting down...")
	case <-interrupted:
		log.Println("Shutting down...")
	case <-shutdownRequested:
		log.Println("Shutdown requested from tray")
	case err := <-serverErrCh:
		log.Printf("HTTP server error: %v", err)
	case err := <-readerErrCh:
		readerErr, readerStopped = err, true
	}
	cancel()

	if !readerStopped {
		readerErr = <-readerErrCh
	}
	if readerErr != nil {
		log.Printf("Input loop error: %v", readerErr)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("joymap stopped")
}
