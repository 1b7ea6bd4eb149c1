package app

import (
	"io"

	"github.com/shrimpsizemoose/trekker/logger"
)

// ConfigureLogging points every logger at w, which must not be the writer
// command results go to. Debug output is dropped unless debug is set.
func ConfigureLogging(w io.Writer, debug bool) {
	logger.Info.SetOutput(w)
	logger.Error.SetOutput(w)
	if debug {
		logger.Debug.SetOutput(w)
	} else {
		logger.Debug.SetOutput(io.Discard)
	}
}
