package main

import (
	"os"

	"orderapi/internal/app"
	"orderapi/internal/config"
	"orderapi/pkg/logger"

	"github.com/spf13/cobra"
)

var envFile string

//	@title			Order Management API
//	@version		1.0
//	@description	CRUD for categories, products, clients, orders and order items with soft delete.
//	@BasePath		/api
func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "api",
		Short:         "Order management REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
		// サブコマンド無しは serve
		RunE: runServe,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before the environment")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables and exit",
		RunE:  runMigrate,
	})
	return root
}

func load() (config.Config, logger.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		// 設定が読めない段階なのでデフォルトのloggerで出す
		log := logger.NewSlogLogger(logger.Options{})
		log.Errorf(err, "failed to load config")
		return config.Config{}, nil, err
	}
	log := logger.NewSlogLogger(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	return cfg, log, nil
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, log, err := load()
	if err != nil {
		return err
	}
	if err := app.Run(cfg, log); err != nil {
		log.Errorf(err, "server stopped with error")
		return err
	}
	return nil
}

func runMigrate(_ *cobra.Command, _ []string) error {
	cfg, log, err := load()
	if err != nil {
		return err
	}
	if err := app.Migrate(cfg, log); err != nil {
		log.Errorf(err, "migrate failed")
		return err
	}
	return nil
}
