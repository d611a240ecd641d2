package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"irrigation_panel/internal/repository"
	"irrigation_panel/internal/service"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errUnreachable = errors.New("device unreachable")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe the configured device once and print the resulting snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return check(cmd.Context())
	},
}

func check(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := initLogger()

	sqlDB, err := openDB(log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer sqlDB.Close()

	services := service.NewService(repository.NewRepository(sqlDB), service.Options{
		Defaults:       deviceDefaults(),
		CheckTimeout:   viper.GetDuration("device.check_timeout"),
		RequestTimeout: viper.GetDuration("device.request_timeout"),
		Log:            log,
	})
	services.Settings.Load(ctx)
	connected := services.Connectivity.Check(ctx)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(services.Monitoring.Snapshot()); err != nil {
		return err
	}
	if !connected {
		return errUnreachable
	}
	return nil
}
