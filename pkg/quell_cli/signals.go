// pkg/quell_cli/signals.go
//
// Signal handling for graceful interruption.

package quell_cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// SignalHandler cancels its context on the first SIGINT/SIGTERM so the run
// stops once the current service is stopped and disabled. A second signal
// exits immediately.
type SignalHandler struct {
	ctx      context.Context
	cancel   context.CancelFunc
	sigChan  chan os.Signal
	doneChan chan struct{}
	stopOnce sync.Once

	stderr io.Writer
	exit   func(int)
}

// NewSignalHandler creates a new signal handler
func NewSignalHandler(ctx context.Context) *SignalHandler {
	h := newSignalHandler(ctx, os.Stderr, os.Exit)
	signal.Notify(h.sigChan, os.Interrupt, syscall.SIGTERM)
	go h.handleSignals()
	return h
}

func newSignalHandler(ctx context.Context, stderr io.Writer, exit func(int)) *SignalHandler {
	ctx, cancel := context.WithCancel(ctx)
	return &SignalHandler{
		ctx:      ctx,
		cancel:   cancel,
		sigChan:  make(chan os.Signal, 2),
		doneChan: make(chan struct{}),
		stderr:   stderr,
		exit:     exit,
	}
}

// Context returns the cancellable context
func (h *SignalHandler) Context() context.Context {
	return h.ctx
}

func (h *SignalHandler) handleSignals() {
	logger := otelzap.Ctx(h.ctx)

	select {
	case sig := <-h.sigChan:
		logger.Warn("Received signal, stopping after the current service",
			zap.String("signal", sig.String()))
		fmt.Fprintf(h.stderr, "\n⚠️  Received %v, stopping after the current service...\n", sig)
		h.cancel()
	case <-h.doneChan:
		return
	}

	select {
	case sig := <-h.sigChan:
		logger.Error("Received second signal, forcing exit", zap.String("signal", sig.String()))
		fmt.Fprintln(h.stderr, "\n⚠️  Received second interrupt, forcing exit!")
		h.exit(130)
	case <-h.doneChan:
	}
}

// Stop releases the handler. Safe to call more than once.
func (h *SignalHandler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigChan)
		close(h.doneChan)
		h.cancel()
	})
}
