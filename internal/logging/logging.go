// Package logging wires the pipeline's per-stage loggers on top of
// btclog/v2's DefaultHandler (SPEC_FULL.md §2 row J), the same
// structured-logging library the rest of the pack's command-line tools
// use for their own subsystem loggers.
package logging

import (
	"io"
	"os"

	"github.com/lightninglabs/btclog/v2"
)

// Stage tags, one per pipeline component (spec §2's stage table): Scan,
// Pars(e), Lowr, Slic(e), Drvr (layer driver), Emit.
const (
	Scan = "SCAN"
	Pars = "PARS"
	Lowr = "LOWR"
	Slic = "SLIC"
	Drvr = "DRVR"
	Emit = "EMIT"
)

var handler = btclog.NewDefaultHandler(os.Stderr)

// Configure redirects log output to w and sets the minimum level for
// every stage logger handed out afterward. quiet wins over verbose when
// both are set (spec §6: "--quiet suppresses everything but errors").
func Configure(w io.Writer, verbose, quiet bool) {
	handler = btclog.NewDefaultHandler(w)
	switch {
	case quiet:
		handler.SetLevel(btclog.LevelError)
	case verbose:
		handler.SetLevel(btclog.LevelDebug)
	default:
		handler.SetLevel(btclog.LevelInfo)
	}
}

// Logger returns the stage-tagged logger for tag (one of the constants
// above), built fresh from the currently configured handler so it always
// reflects the most recent Configure call.
func Logger(tag string) btclog.Logger {
	return btclog.NewSLogger(handler.WithSubSystem(tag))
}
