// Package logutil provides logging utilities.
//
// Every package that logs obtains its own logger with GetLogger. All loggers
// share one output, which is io.Discard until SetOutput or SetOutputFile is
// called.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	out = io.Discard
	// If out is set by SetOutputFile, outFile is set and keeps the same value
	// as out. Otherwise, outFile is nil.
	outFile *os.File
	loggers []*log.Logger
	// Protects the above variables.
	mutex sync.Mutex
)

// GetLogger gets a logger with a prefix.
func GetLogger(prefix string) *log.Logger {
	mutex.Lock()
	defer mutex.Unlock()
	logger := log.New(out, prefix, log.LstdFlags|log.Lmicroseconds)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers obtained with GetLogger to
// the new io.Writer. If the old output was a file opened by SetOutputFile, it
// is closed.
func SetOutput(newout io.Writer) {
	mutex.Lock()
	defer mutex.Unlock()
	setOutput(newout, nil)
}

// SetOutputFile redirects the output of all loggers obtained with GetLogger to
// the named file, which is opened for appending. An empty name discards
// output.
func SetOutputFile(fname string) error {
	mutex.Lock()
	defer mutex.Unlock()
	if fname == "" {
		setOutput(io.Discard, nil)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	setOutput(file, file)
	return nil
}

func setOutput(newout io.Writer, newOutFile *os.File) {
	if outFile != nil {
		outFile.Close()
	}
	out, outFile = newout, newOutFile
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
}
