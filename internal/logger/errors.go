package logger

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrAppNameIsEmpty is returned if Log.AppName was not defined.
	ErrAppNameIsEmpty = errors.New("config Log.AppName can not be empty")

	// ErrServiceNameIsEmpty is returned if Log.ServiceName was not defined.
	ErrServiceNameIsEmpty = errors.New("config Log.ServiceName can not be empty")

	// ErrDataDogAPIKeyIsEmpty is returned if DataDog is enabled without Log.DataDog.APIKey.
	ErrDataDogAPIKeyIsEmpty = errors.New("config Log.DataDog.APIKey can not be empty")

	// ErrNoOutput is returned if no writer is enabled while logging is not disabled.
	ErrNoOutput = errors.New("config Log enables no output, enable Console, File or DataDog")
)

// reportWriteError is the zerolog.ErrorHandler, logging can't report its own failures.
func reportWriteError(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "zerolog: could not write event: %v\n", err)
}
