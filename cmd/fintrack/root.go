package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fintrack/internal/backend"
	"fintrack/internal/cli"
	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/storage"
)

// app holds what every command needs once configuration is loaded.
type app struct {
	v       *viper.Viper
	cfgFile string

	cfg      *config.Config
	logger   *log.Logger
	cleanup  backend.CleanupFunc
	ledger   *services.Ledger
	renewals *services.RenewalProcessor
	prefs    *services.PreferencesService
	printer  *cli.Printer

	now func() time.Time
}

// newRootCmd builds the command tree. now supplies the current time to every
// command.
func newRootCmd(now func() time.Time) *cobra.Command {
	a := &app{v: config.NewViper(), now: now}

	root := &cobra.Command{
		Use:   "fintrack",
		Short: "Personal finance tracker",
		Long: `fintrack records day-to-day expenses and recurring subscriptions,
compares spending against a monthly budget and summarizes where the money goes.`,
		Version:            version,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.start,
		PersistentPostRunE: a.stop,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/fintrack/config.yaml)")
	root.PersistentFlags().String("backend", "", "data backend (memory, sqlite)")
	root.PersistentFlags().String("db", "", "SQLite database path")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "", "log format (text, json)")

	_ = a.v.BindPFlag("data_backend", root.PersistentFlags().Lookup("backend"))
	_ = a.v.BindPFlag("sqlite_db_path", root.PersistentFlags().Lookup("db"))
	_ = a.v.BindPFlag("log.level", root.PersistentFlags().Lookup("log-level"))
	_ = a.v.BindPFlag("log.format", root.PersistentFlags().Lookup("log-format"))

	root.AddCommand(expenseCmd(a))
	root.AddCommand(subscriptionCmd(a))
	root.AddCommand(budgetCmd(a))
	root.AddCommand(overviewCmd(a))
	root.AddCommand(statsCmd(a))
	root.AddCommand(prefsCmd(a))
	root.AddCommand(resetCmd(a))

	return root
}

// start loads configuration and opens the store.
func (a *app) start(cmd *cobra.Command, _ []string) error {
	cfg, err := cli.LoadAndValidateConfig(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	logger, err := cli.SetupLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	result, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to open data store",
			log.NewFields().
				WithOperation(log.OpStartup).
				WithErrorType(log.ErrorTypeConfiguration).
				WithError(err).
				ToSlice()...)
		return fmt.Errorf("open data store: %w", err)
	}

	gateway := storage.NewGateway(result.Store, logger)
	a.cfg = cfg
	a.logger = logger
	a.cleanup = result.Cleanup
	a.ledger = services.NewLedger(gateway, logger)
	a.renewals = services.NewRenewalProcessor(gateway, logger)
	a.prefs = services.NewPreferencesService(gateway, services.Preferences{
		Theme:       cfg.Display.Theme,
		DisplayName: cfg.Display.Name,
	}, logger)

	prefs := a.prefs.Load(ctx)
	a.printer = cli.NewPrinter(cmd.OutOrStdout(), cli.NewStyles(prefs.Dark()))

	cmd.SetContext(log.WithContext(ctx, logger))
	logger.DebugContext(ctx, "Started", log.FieldOperation, log.OpStartup, log.FieldBackend, cfg.DataBackend)
	return nil
}

func (a *app) stop(cmd *cobra.Command, _ []string) error {
	if a.cleanup == nil {
		return nil
	}
	err := a.cleanup()
	a.cleanup = nil
	if err != nil {
		log.FromContext(cmd.Context()).ErrorContext(cmd.Context(), "Failed to close data store",
			log.NewFields().WithErrorType(log.ErrorTypeDatabase).WithError(err).ToSlice()...)
		return fmt.Errorf("close data store: %w", err)
	}
	return nil
}
