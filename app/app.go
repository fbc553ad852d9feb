// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package app

import (
	"context"
	"errors"
	"io"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	coreStore "github.com/sygmaprotocol/sygma-core/store"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	otelmetric "go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/ChainSafe/bridge-settlement/api"
	"github.com/ChainSafe/bridge-settlement/bridge"
	"github.com/ChainSafe/bridge-settlement/bridge/ledger"
	"github.com/ChainSafe/bridge-settlement/bridge/registry"
	"github.com/ChainSafe/bridge-settlement/bridge/settlement"
	"github.com/ChainSafe/bridge-settlement/config"
	"github.com/ChainSafe/bridge-settlement/config/service"
	"github.com/ChainSafe/bridge-settlement/health"
	"github.com/ChainSafe/bridge-settlement/lvldb"
	"github.com/ChainSafe/bridge-settlement/metrics"
	"github.com/ChainSafe/bridge-settlement/relay"
	"github.com/ChainSafe/bridge-settlement/store"
)

const outboxQueueSize = 256

func Run() error {
	var err error

	configFlag := viper.GetString("config")

	configuration := &config.Config{}
	if strings.ToLower(configFlag) == "env" {
		configuration, err = config.GetConfigFromENV(configuration)
		panicOnError(err)
	} else {
		configuration, err = config.GetConfigFromFile(configFlag, configuration)
		panicOnError(err)
	}

	configureLogger(configuration.ServiceConfig)
	log.Info().Msg("Successfully loaded configuration")

	go health.StartHealthEndpoint(configuration.ServiceConfig.HealthPort)

	// waits until a previous instance releases the store file
	var db *lvldb.LVLDB
	for {
		db, err = lvldb.NewLvlDB(configuration.ServiceConfig.StorePath)
		if err != nil {
			log.Error().Err(err).Msg("Unable to connect to settlement store file, retry in 10 seconds")
			time.Sleep(10 * time.Second)
		} else {
			log.Info().Msg("Successfully connected to settlement store file")
			break
		}
	}

	defer db.Close()

	err = seedStores(db, configuration.BridgeConfig)
	panicOnError(err)

	meter, err := initMeter(configuration.ServiceConfig.OpenTelemetryCollectorURL)
	panicOnError(err)
	settlementMetrics, err := metrics.NewSettlementMetrics(meter, configuration.ServiceConfig.Env, configuration.ServiceConfig.ID)
	panicOnError(err)

	outbox := relay.NewOutbox(store.NewOutboxStore(db), outboxQueueSize)
	dispatcher := relay.NewDispatcher(outbox, relay.NewLogCourier())

	whitelist := config.NewWhitelist(configuration.BridgeConfig.WhitelistedChains)
	handler := settlement.NewHandler(
		db,
		whitelist,
		outbox,
		configuration.BridgeConfig.Prices,
		configuration.BridgeConfig.NativeExecutionPrice,
		configuration.BridgeConfig.Treasury,
		settlementMetrics,
	)
	apiServer := api.NewServer(handler, configuration.ServiceConfig.ApiPort)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChn := make(chan error)
	go func() {
		errChn <- dispatcher.Start(ctx)
	}()
	go func() {
		errChn <- apiServer.Start()
	}()

	sysErr := make(chan os.Signal, 1)
	signal.Notify(sysErr,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGHUP,
		syscall.SIGQUIT)

	serviceName := viper.GetString("name")
	log.Info().Msgf("Started settlement service: %s", serviceName)

	select {
	case err := <-errChn:
		log.Error().Err(err).Msg("failed to listen and serve")
		return err
	case sig := <-sysErr:
		log.Info().Msgf("terminating got ` [%v] signal", sig)
		return nil
	}
}

// seedStores writes configured fee schedules and asset registrations that
// are not already present. Records changed later through governance calls
// survive restarts.
func seedStores(db coreStore.KeyValueReaderWriter, cfg config.BridgeConfig) error {
	feeStore := store.NewFeeStore(db)
	for _, schedule := range cfg.FeeSchedules {
		if feeStore.HasFee(schedule.DestChainID) {
			continue
		}
		minFee, err := ledger.ToLedgerBalance(schedule.MinFee)
		if err != nil {
			return err
		}
		err = feeStore.StoreFee(schedule.DestChainID, store.BridgeFee{
			MinFee:   minFee,
			FeeScale: types.NewU32(schedule.FeeScale),
		})
		if err != nil {
			return err
		}
		log.Info().Uint8("destination", schedule.DestChainID).Msg("Seeded fee schedule")
	}

	assetRegistry := registry.NewRegistry(db)
	for _, asset := range cfg.Assets {
		_, err := assetRegistry.ByLocation(asset.Location)
		if err == nil {
			continue
		}
		if !errors.Is(err, bridge.ErrAssetNotRegistered) {
			return err
		}
		rid, err := assetRegistry.Register(asset)
		if err != nil {
			return err
		}
		log.Info().Str("resourceID", rid.Hex()).Str("symbol", asset.Symbol).Msg("Seeded asset registration")
	}

	return nil
}

// initMeter exports metrics to the configured OTLP collector, or falls back
// to the global provider when no collector is configured.
func initMeter(collectorRawURL string) (otelmetric.Meter, error) {
	if collectorRawURL == "" {
		return otel.Meter("bridge-settlement"), nil
	}

	collectorURL, err := url.Parse(collectorRawURL)
	if err != nil {
		return nil, err
	}
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(collectorURL.Host),
		otlpmetrichttp.WithURLPath(collectorURL.Path),
	}
	if collectorURL.Scheme == "http" {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(context.Background(), opts...)
	if err != nil {
		return nil, err
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)))
	otel.SetMeterProvider(provider)
	return provider.Meter("bridge-settlement"), nil
}

func configureLogger(cfg service.ServiceConfig) {
	zerolog.SetGlobalLevel(cfg.LogLevel)
	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}}
	if cfg.LogFile != "" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Warn().Err(err).Msgf("Unable to open log file %s", cfg.LogFile)
		} else {
			writers = append(writers, logFile)
		}
	}
	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
}

func panicOnError(err error) {
	if err != nil {
		panic(err)
	}
}
