package cmd

import (
	"os"

	logging "github.com/op/go-logging"
	"github.com/urfave/cli"
)

var logger = logging.MustGetLogger("tracekernel")

var logFormat = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

// SetupLogging wires the go-logging backend and maps the -v/-vv global
// flags to log levels.
func SetupLogging(ctx *cli.Context) {
	backend := logging.NewLogBackend(os.Stdout, "", 0)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, logFormat))

	switch {
	case ctx.GlobalBool("vv"):
		leveled.SetLevel(logging.DEBUG, "")
	case ctx.GlobalBool("v"):
		leveled.SetLevel(logging.INFO, "")
	default:
		leveled.SetLevel(logging.NOTICE, "")
	}

	logging.SetBackend(leveled)
}
