// File: cmd/plugbusd/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// plugbusd binds the configured listening sockets, loads the configured
// modules, and runs the reactor loop until SIGINT/SIGTERM.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/plugbus/plugbus/modmgr"
	"github.com/plugbus/plugbus/server"
)

// stringList is a repeatable flag value.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var (
		listens stringList
		mods    stringList
	)
	flag.Var(&listens, "listen", "endpoint to bind, dotted-decimal \"addr:port\" (repeatable)")
	flag.Var(&mods, "module", "path to a module shared object to load (repeatable)")
	debug := flag.Bool("debug", false, "enable development logging")
	flag.Parse()

	log := zap.Must(zap.NewProduction())
	if *debug {
		log = zap.Must(zap.NewDevelopment())
	}
	defer log.Sync()

	if len(listens) == 0 {
		listens = stringList{"0.0.0.0:6667"}
	}

	if err := run(log, listens, mods); err != nil {
		log.Fatal("plugbusd failed", zap.Error(err))
	}
}

func run(log *zap.Logger, listens, mods []string) error {
	core, err := server.New(server.WithLogger(log))
	if err != nil {
		return err
	}
	defer core.Close()

	for _, l := range listens {
		addr, port, err := splitEndpoint(l)
		if err != nil {
			return err
		}
		if err := core.Sockets().NewSocket(addr, port); err != nil {
			return err
		}
	}

	mgr := modmgr.NewManager(core.Bus(), modmgr.WithLogger(log))
	for _, path := range mods {
		if err := mgr.Load(path); err != nil {
			return err
		}
	}
	// Modules come out of the bus before the sockets go down.
	defer mgr.UnloadAll()

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := core.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// splitEndpoint parses "addr:port". Address validation proper happens in
// the socket registry; this only separates the two fields.
func splitEndpoint(s string) (string, int, error) {
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return "", 0, fmt.Errorf("endpoint %q: expected addr:port", s)
	}
	port, err := strconv.Atoi(s[i+1:])
	if err != nil || port < 0 || port > 65535 {
		return "", 0, fmt.Errorf("endpoint %q: bad port", s)
	}
	return s[:i], port, nil
}
