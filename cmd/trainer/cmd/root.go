/*
 *     Copyright 2026 The Pricer Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mobileprice/pricer/cmd/dependency"
	"github.com/mobileprice/pricer/internal/logger"
	"github.com/mobileprice/pricer/pkg/types"
	"github.com/mobileprice/pricer/pkg/workpath"
	"github.com/mobileprice/pricer/trainer"
	"github.com/mobileprice/pricer/trainer/config"
	"github.com/mobileprice/pricer/version"
)

var (
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   types.TrainerName,
	Short: "the trainer of the mobile phone price model",
	Long: `Trainer is a batch process that reads the raw phone dataset, derives the feature set from noisy text columns,
fits a gradient boosted regression tree ensemble on the log price and persists the model with its column schema.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Convert config.
		if err := cfg.Convert(); err != nil {
			return err
		}

		// Validate config.
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Initialize workpath.
		d, err := initWorkpath(&cfg.Server)
		if err != nil {
			return errors.Wrap(err, "init workpath")
		}

		rotateConfig := logger.LogRotateConfig{
			MaxSize:    cfg.Server.LogMaxSize,
			MaxAge:     cfg.Server.LogMaxAge,
			MaxBackups: cfg.Server.LogMaxBackups,
		}

		// Initialize logger.
		if err := logger.InitTrainer(cfg.Verbose, cfg.Console, d.LogDir(), rotateConfig); err != nil {
			return fmt.Errorf("init trainer logger: %w", err)
		}

		return runTrainer(ctx, d)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func init() {
	// Initialize default trainer config.
	cfg = config.New()
	// Initialize command and config.
	dependency.InitCommandAndConfig(rootCmd, true, cfg)
}

func initWorkpath(cfg *config.ServerConfig) (workpath.Workpath, error) {
	var options []workpath.Option
	if cfg.WorkHome != "" {
		options = append(options, workpath.WithWorkHome(cfg.WorkHome))
	}

	if cfg.LogDir != "" {
		options = append(options, workpath.WithLogDir(cfg.LogDir))
	}

	if cfg.DataDir != "" {
		options = append(options, workpath.WithDataDir(cfg.DataDir))
	}

	return workpath.New(options...)
}

func runTrainer(ctx context.Context, d workpath.Workpath) error {
	logger.Infof("version:\n%s", version.Version())

	ff := dependency.InitMonitor(cfg.Verbose, cfg.PProfPort)
	defer ff()

	if cfg.Telemetry.Jaeger != "" {
		ft, err := dependency.InitTracer(types.TrainerOtelServiceName, cfg.Telemetry.Jaeger)
		if err != nil {
			return errors.Wrap(err, "init tracer")
		}
		defer ft()
	}

	svr, err := trainer.New(ctx, cfg, d)
	if err != nil {
		return err
	}

	dependency.SetupQuitSignalHandler(func() { svr.Stop() })
	return svr.Serve()
}
