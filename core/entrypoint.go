package core

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path"

	"github.com/encodeous/dvsim/state"
	"github.com/encodeous/tint"
	slogmulti "github.com/samber/slog-multi"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLogger writes to stderr, and additionally appends to logPath when it is set.
// The returned closer releases the log file.
func NewLogger(prefix string, logLevel slog.Level, logPath string) (*slog.Logger, io.Closer, error) {
	handlers := make([]slog.Handler, 0)
	handlers = append(handlers,
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:        logLevel,
			AddSource:    false,
			CustomPrefix: prefix,
			ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
				if attr.Key == "time" {
					return slog.Attr{}
				}
				return attr
			},
		}))

	var closer io.Closer = nopCloser{}
	if logPath != "" {
		err := os.MkdirAll(path.Dir(logPath), 0700)
		if err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(logPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600)
		if err != nil {
			return nil, nil, err
		}
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: logLevel}))
		closer = f
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

// Simulate builds the topology described by tcfg and drives it until it converges or hits the iteration cap
func Simulate(ctx context.Context, tcfg state.TopologyCfg, rcfg state.RunCfg, obs Observer, log *slog.Logger) (*Result, *Topology, error) {
	state.ExpandRunConfig(&rcfg)
	err := state.RunConfigValidator(&rcfg)
	if err != nil {
		return nil, nil, err
	}
	topo, err := BuildTopology(tcfg, rcfg.Policy, log)
	if err != nil {
		return nil, nil, err
	}
	res, err := NewDriver(topo, rcfg, obs, log).Run(ctx)
	if err != nil {
		return nil, topo, err
	}
	return res, topo, nil
}
