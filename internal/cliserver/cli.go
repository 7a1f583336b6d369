// Package cliserver implements the router's interactive operator console:
// a line-oriented stdin loop for listing, adding, and reloading
// virtualhosts without restarting the process.
package cliserver

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	mcnet "github.com/seiftnesse/mc-router/common/net"
	"github.com/seiftnesse/mc-router/internal/config"
)

// Run reads lines from in until it reaches end of input or a read error,
// dispatching each as a command against store.
// It blocks the calling goroutine - callers run it in its own goroutine
// alongside the listener.
func Run(in io.Reader, out io.Writer, store *config.Store, log *logrus.Logger) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := dispatch(line, out, store); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		log.WithError(err).Warn("cli: stdin read error")
	}
}

func dispatch(line string, out io.Writer, store *config.Store) error {
	fields := strings.Fields(line)
	command := fields[0]
	args := fields[1:]

	switch command {
	case "list":
		return cmdList(out, store)
	case "forward":
		return cmdForward(out, store, args)
	case "reload":
		return cmdReload(out, store)
	default:
		fmt.Fprintf(out, "Unknown command '%s'\n", command)
		return nil
	}
}

func cmdList(out io.Writer, store *config.Store) error {
	cfg := store.Snapshot()
	for _, vh := range cfg.VirtualHosts {
		target := "(no forward)"
		if vh.Action.Forward != nil {
			target = vh.Action.Forward.String()
		}
		fmt.Fprintf(out, "%s -> %s\n", vh.Hostname, target)
	}
	return nil
}

func cmdForward(out io.Writer, store *config.Store, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: forward <hostname> <target>")
	}
	hostname, err := mcnet.ParseHostname(args[0])
	if err != nil {
		return err
	}
	target, err := mcnet.ParseServerAddr(args[1])
	if err != nil {
		return err
	}

	err = store.Mutate(func(cfg *config.Config) {
		for i := range cfg.VirtualHosts {
			if cfg.VirtualHosts[i].Hostname == hostname {
				cfg.VirtualHosts[i].Action = config.Action{Forward: &target}
				return
			}
		}
		cfg.VirtualHosts = append(cfg.VirtualHosts, config.VirtualHost{
			Hostname: hostname,
			Action:   config.Action{Forward: &target},
		})
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s -> %s\n", hostname, target)
	return nil
}

func cmdReload(out io.Writer, store *config.Store) error {
	if err := store.Reload(); err != nil {
		return err
	}
	fmt.Fprintln(out, "reloaded")
	return nil
}
