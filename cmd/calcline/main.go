// Command calcline is a single-line decimal calculator. Without a
// subcommand it runs interactively in the terminal.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// host holds what the persistent pre-run sets up for every command.
type host struct {
	v        *viper.Viper
	cfg      *Config
	log      *logrus.Logger
	closeLog func()
}

// newRootCmd creates the command tree. The returned function releases what
// the command set up and must be called after it executes.
func newRootCmd() (*cobra.Command, func()) {
	h := new(host)
	root := &cobra.Command{
		Use:               "calcline",
		Short:             "Single-line decimal calculator",
		SilenceUsage:      true,
		PersistentPreRunE: h.setup,
		RunE:              h.runTUI,
	}
	root.Version = version + " (commit=" + commit + ", built=" + date + ")"
	root.SetVersionTemplate("calcline version {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default $HOME/.config/calcline/calcline.yaml or ./calcline.yaml)")
	pf.Uint32("precision", 0, "significant digits of results (env CALCLINE_PRECISION)")
	pf.String("log-level", "", "log level (env CALCLINE_LOG_LEVEL)")
	pf.String("log-format", "", "log format, text or json (env CALCLINE_LOG_FORMAT)")
	pf.String("log-file", "", "log file (env CALCLINE_LOG_FILE)")

	root.AddCommand(newEvalCmd(h), newFormatCmd(h))
	return root, h.teardown
}

func main() {
	root, cleanup := newRootCmd()
	err := root.Execute()
	cleanup()
	if err != nil {
		os.Exit(1)
	}
}

func (h *host) setup(cmd *cobra.Command, args []string) error {
	v, err := newViper(cmd.Root())
	if err != nil {
		return err
	}
	path, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := loadConfig(v, path)
	if err != nil {
		return err
	}
	l, closeLog, err := newLogger(cfg.Log, !cmd.HasParent())
	if err != nil {
		return err
	}
	h.v, h.cfg, h.log, h.closeLog = v, cfg, l, closeLog
	l.WithFields(logrus.Fields{
		"config":    v.ConfigFileUsed(),
		"precision": cfg.Precision,
	}).Debug("configured")
	return nil
}

func (h *host) teardown() {
	if h.closeLog != nil {
		h.closeLog()
	}
}

func (h *host) runTUI(cmd *cobra.Command, args []string) error {
	return runTUI(h)
}
