package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/adobe/kompos/cmd"
	errUtils "github.com/adobe/kompos/errors"
	log "github.com/adobe/kompos/pkg/logger"
)

func main() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		// Exit with the POSIX convention of 128 + signal number.
		if s, ok := sig.(syscall.Signal); ok {
			errUtils.OsExit(128 + int(s))
		}
		errUtils.OsExit(130)
	}()

	errUtils.OsExit(run())
}

// run executes the CLI and returns the process exit code. The
// separation keeps os.Exit out of the command path so tests can call
// cmd.Execute directly.
func run() int {
	if err := cmd.Execute(); err != nil {
		os.Stderr.WriteString(errUtils.Format(err) + "\n")
		exitCode := errUtils.GetExitCode(err)
		log.Debug("exiting", "code", exitCode)
		return exitCode
	}
	return 0
}
