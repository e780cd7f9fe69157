package main

import (
	"context"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	server "syncarena/server"
	"syncarena/server/logging"
)

func main() {
	var (
		addr     string
		httpAddr string
		tickRate int
		logPath  string
	)
	flag.StringVar(&addr, "addr", ":8820", "game wire listen address")
	flag.StringVar(&httpAddr, "http", ":8080", "diagnostics listen address")
	flag.IntVar(&tickRate, "tick", server.DefaultTickRate, "simulation ticks per second")
	flag.StringVar(&logPath, "log", "server.log", "log file path (empty for stderr only)")
	flag.Parse()

	log := logging.New(logPath)
	defer log.Sync()

	hub := server.NewHub(log, tickRate)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalw("listen failed", "addr", addr, "err", err)
	}

	stop := make(chan struct{})
	go hub.Run(stop)
	go func() {
		if err := hub.Serve(ln); err != nil {
			log.Infow("accept loop stopped", "err", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", hub.HandleHealthz)
	mux.HandleFunc("/diagnostics", hub.HandleDiagnostics)
	mux.HandleFunc("/watch", hub.HandleWatch)

	srv := &http.Server{Addr: httpAddr, Handler: mux}
	go func() {
		log.Infow("server listening", "game", addr, "http", httpAddr, "tickRate", tickRate)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("http serve failed", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	close(stop)
	_ = ln.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
