// Command mcrouter is a transparent, hostname-routed reverse proxy for the
// Minecraft Java Edition protocol: it reads just enough of a connection's
// handshake to decide where it goes, then either answers in-process or
// forwards the raw bytes to a backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/seiftnesse/mc-router/internal/applog"
	"github.com/seiftnesse/mc-router/internal/cliserver"
	"github.com/seiftnesse/mc-router/internal/config"
	"github.com/seiftnesse/mc-router/internal/router"
)

const version = "1.0.0"

func main() {
	configFile := flag.String("config", "config.yml", "path to the YAML config file")
	listenAddr := flag.String("listen", "0.0.0.0:25565", "address to accept Minecraft connections on")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	logDir := flag.String("log-dir", "logs", "directory for daily-rotating JSON log files (empty disables file logging)")
	handshakeTimeout := flag.Duration("handshake-timeout", 10*time.Second, "how long a connection has to complete its handshake")
	showVersion := flag.Bool("version", false, "print version and exit")
	generateConfig := flag.Bool("generate-config", false, "write an empty config file to -config and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("mcrouter version %s\n", version)
		os.Exit(0)
	}

	if *generateConfig {
		if err := config.Save(config.Config{}, *configFile); err != nil {
			fmt.Fprintf(os.Stderr, "generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote empty configuration to %s\n", *configFile)
		os.Exit(0)
	}

	log, err := applog.New(applog.Config{Level: *logLevel, LogDir: *logDir})
	if err != nil {
		fmt.Fprintf(os.Stderr, "build logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	store := config.NewStore(*configFile, cfg)

	dispatcher := &router.Dispatcher{
		Store:            store,
		Dialer:           router.NetDialer{Log: log.WithField("component", "dialer")},
		Log:              log,
		HandshakeTimeout: *handshakeTimeout,
	}

	server, err := router.NewServer(*listenAddr, dispatcher, log)
	if err != nil {
		log.WithError(err).Fatal("start listener")
	}

	log.WithFields(logrus.Fields{
		"listen":  server.Addr().String(),
		"config":  *configFile,
		"version": version,
	}).Info("mcrouter starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go cliserver.Run(os.Stdin, os.Stdout, store, log)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("shutting down")
		cancel()
		if err := server.Stop(); err != nil {
			log.WithError(err).Warn("error during shutdown")
		}
	}()

	if err := server.Serve(ctx); err != nil {
		log.WithError(err).Fatal("server error")
	}
}
