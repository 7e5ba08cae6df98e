// Command fleetiam runs the fleet IAM server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/gravitational/trace"

	"github.com/edgefleet/fleetiam"
	"github.com/edgefleet/fleetiam/lib/config"
	"github.com/edgefleet/fleetiam/lib/logutils"
	"github.com/edgefleet/fleetiam/lib/service"

	// Certificate and identity plugins register themselves on import.
	_ "github.com/edgefleet/fleetiam/lib/certhandler/pkcs11"
	_ "github.com/edgefleet/fleetiam/lib/identity/fileident"
	_ "github.com/edgefleet/fleetiam/lib/identity/visident"
)

const defaultConfigPath = "/etc/fleetiam/fleetiam.cfg"

func main() {
	app := kingpin.New("fleetiam", "Fleet IAM server.")
	configPath := app.Flag("config", "Path to the configuration file.").
		Short('c').Default(defaultConfigPath).String()
	provisioningMode := app.Flag("provisioning",
		"Start the endpoints without TLS for initial provisioning.").Bool()
	journal := app.Flag("journal", "Log to the systemd journal instead of stderr.").Bool()
	verbose := app.Flag("verbose", "Log severity (debug, info, warn, error).").
		Short('v').Default("info").String()

	version := fleetiam.Version
	if fleetiam.Gitref != "" {
		version = fmt.Sprintf("%v git:%v", version, fleetiam.Gitref)
	}
	app.Version(version)
	app.HelpFlag.Short('h')

	kingpin.MustParse(app.Parse(os.Args[1:]))

	logCfg := logutils.Config{Severity: *verbose}
	if *journal {
		logCfg.Format = logutils.FormatJournal
	}

	if _, _, err := logutils.Initialize(logCfg); err != nil {
		fatal(err)
	}

	cfg, err := config.ReadFromFile(*configPath)
	if err != nil {
		fatal(err)
	}

	svc, err := service.New(cfg, *provisioningMode)
	if err != nil {
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	runErr := svc.Run(ctx)
	stop()
	svc.Close()

	if runErr != nil {
		fatal(runErr)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "ERROR:", trace.UserMessage(err))
	os.Exit(1)
}
