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

package dependency

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"reflect"
	"strings"
	"syscall"
	"time"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/mitchellh/mapstructure"
	"github.com/phayes/freeport"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"gopkg.in/yaml.v3"

	"github.com/mobileprice/pricer/internal/logger"
	"github.com/mobileprice/pricer/pkg/unit"
	"github.com/mobileprice/pricer/pkg/workpath"
	"github.com/mobileprice/pricer/version"
)

// tracerShutdownTimeout bounds the flush of pending spans on exit.
const tracerShutdownTimeout = 5 * time.Second

// InitCommandAndConfig adds the shared flags and the version command to cmd
// and loads config from defaults, the config file, the environment and flags,
// in increasing priority.
func InitCommandAndConfig(cmd *cobra.Command, useConfigFile bool, config any) {
	// Add common flags.
	flags := cmd.PersistentFlags()
	flags.Bool("console", false, "whether logger output records to the stdout")
	flags.Bool("verbose", false, "whether logger use debug level")
	flags.Int("pprof-port", -1, "listen port for pprof, 0 represents random port")

	if useConfigFile {
		flags.String("config", filepath.Join(workpath.DefaultConfigDir, fmt.Sprintf("%s.yaml", cmd.Name())), "the path of configuration file with yaml extension name")
	}

	// Bind common flags.
	if err := viper.BindPFlags(flags); err != nil {
		panic(errors.Wrap(err, "bind common flags to viper"))
	}

	// Config for binary.
	cobra.OnInitialize(func() {
		if err := initConfig(cmd, useConfigFile, config); err != nil {
			logger.Fatalf("load config: %s", err.Error())
		}
	})

	// Add sub command.
	cmd.AddCommand(VersionCmd)
}

// initConfig reads in config file and env variables if set.
func initConfig(cmd *cobra.Command, useConfigFile bool, config any) error {
	v := viper.GetViper()

	// Defaults come from the config value itself, which also makes every
	// nested key visible to the environment lookup.
	defaults, err := yaml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "marshal default config")
	}

	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return errors.Wrap(err, "read default config")
	}

	if useConfigFile {
		if err := readConfigFile(v, cmd); err != nil {
			return errors.Wrap(err, "read config file")
		}
	}

	v.SetEnvPrefix(cmd.Name())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(config, initDecoderConfig); err != nil {
		return errors.Wrap(err, "unmarshal config")
	}

	return nil
}

// readConfigFile merges the config file into v. A missing default config file
// is not an error.
func readConfigFile(v *viper.Viper, cmd *cobra.Command) error {
	v.SetConfigFile(v.GetString("config"))
	if err := v.MergeInConfig(); err != nil {
		if os.IsNotExist(err) && !cmd.Flag("config").Changed {
			logger.Warnf("default config file %s not found, use default config", v.GetString("config"))
			return nil
		}

		return err
	}

	logger.Infof("load config file %s", v.ConfigFileUsed())
	return nil
}

func initDecoderConfig(dc *mapstructure.DecoderConfig) {
	dc.TagName = "mapstructure"
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		stringToBytesHookFunc(),
		decodeWithYAML(reflect.TypeOf(time.Second), reflect.TypeOf(unit.Bytes(0))),
	)
}

// stringToBytesHookFunc returns a mapstructure.DecodeHookFunc that converts
// human readable sizes such as 64MB to unit.Bytes.
func stringToBytesHookFunc() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(unit.Bytes(0)) {
			return data, nil
		}

		return unit.ParseSize(reflect.ValueOf(data).String())
	}
}

// decodeWithYAML returns a mapstructure.DecodeHookFunc to decode the given
// types by unmarshalling from yaml text.
func decodeWithYAML(types ...reflect.Type) mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data any) (any, error) {
		for _, typ := range types {
			if t == typ && f.Kind() != reflect.String {
				b, _ := yaml.Marshal(data)
				v := reflect.New(t)
				return v.Interface(), yaml.Unmarshal(b, v.Interface())
			}
		}
		return data, nil
	}
}

// SetupQuitSignalHandler calls handler once on the first quit signal.
func SetupQuitSignalHandler(handler func()) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		var done bool
		for sig := range signals {
			logger.Warnf("receive %s signal", sig)
			if !done {
				done = true
				handler()
				logger.Warnf("handle signal %s finish", sig)
			}
		}
	}()
}

// InitTracer exports the spans of serviceName to the jaeger collector at
// endpoint, the returned function flushes the pending spans.
func InitTracer(serviceName, endpoint string) (func(), error) {
	exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(endpoint)))
	if err != nil {
		return nil, errors.Wrap(err, "create jaeger exporter")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(version.GitVersion),
		)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	logger.Infof("export traces of %s to %s", serviceName, endpoint)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), tracerShutdownTimeout)
		defer cancel()

		if err := tp.Shutdown(ctx); err != nil {
			logger.Warnf("shutdown tracer provider error: %s", err.Error())
		}
	}, nil
}

// InitMonitor starts pprof and statsview when verbose is set, it returns a
// function that stops them.
func InitMonitor(verbose bool, pprofPort int) func() {
	if !verbose {
		return func() {}
	}

	if pprofPort <= 0 {
		port, err := freeport.GetFreePort()
		if err != nil {
			logger.Errorf("get free port failed: %s", err.Error())
			return func() {}
		}
		pprofPort = port
	}

	debugListen := fmt.Sprintf("localhost:%d", pprofPort)
	viewer.SetConfiguration(viewer.WithAddr(debugListen))
	vm := statsview.New()

	go func() {
		logger.With("pprof", fmt.Sprintf("http://%s/debug/pprof", debugListen),
			"statsview", fmt.Sprintf("http://%s/debug/statsview", debugListen)).
			Infof("enable debug at http://%s", debugListen)

		if err := vm.Start(); err != nil {
			logger.Warnf("serve statsview error: %s", err.Error())
		}
	}()

	return func() {
		vm.Stop()
	}
}
