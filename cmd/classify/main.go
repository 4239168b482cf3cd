package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pivotlab/regime-core/internal/config"
	"github.com/pivotlab/regime-core/internal/feed"
	"github.com/pivotlab/regime-core/internal/logger"
	"github.com/pivotlab/regime-core/internal/postgres"
	"github.com/pivotlab/regime-core/internal/regime"
	"github.com/pivotlab/regime-core/internal/series"
)

const _defaultCfgFilePath = "./configs/classifier.yaml"

func main() {
	cfgPath := flag.String("config", _defaultCfgFilePath, "path to classifier config")
	flag.Parse()

	zapLogger, loggerSync, err := logger.NewZapLogger(logger.ParseLevel(os.Getenv("LOG_LEVEL")))
	if err != nil {
		log.Fatalf("%s: can't init logger", err)
	}
	defer loggerSync()

	if err := godotenv.Load(); err != nil {
		zapLogger.Warnf("can't detect .env file")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		zapLogger.Fatalf("%s: can't load config", err)
	}

	pgConfig := postgres.NewConfigFromEnv().Setup()
	zapLogger.Debugf("trying to connect to db with: %s", pgConfig)
	db, err := postgres.NewDB(pgConfig)
	if err != nil {
		zapLogger.Fatalf("%s: can't connect to db", err)
	}

	store := regime.NewStore(db, zapLogger)
	if err := store.InitSchema(ctx); err != nil {
		zapLogger.Fatalf("%s: can't init schema", err)
	}

	from, to := interval(cfg.Classifier)
	zapLogger.Infof("classifying %s .. %s (benchmark=%s volatility=%s)",
		from.Format(time.DateOnly), to.Format(time.DateOnly),
		cfg.Classifier.BenchmarkSymbol, cfg.Classifier.VolatilitySymbol)

	feedClient := feed.NewClient(cfg.Feed, zapLogger)

	// a missing series degrades the run to unknown labels instead of failing it
	benchmarkSamples, err := feedClient.Fetch(ctx, cfg.Classifier.BenchmarkSymbol, from, to)
	if err != nil {
		zapLogger.Errorf("%s: can't fetch benchmark series, proceeding without it", err)
	}
	volatilitySamples, err := feedClient.FetchVolatility(ctx, cfg.Classifier.VolatilitySymbol, from, to)
	if err != nil {
		zapLogger.Errorf("%s: can't fetch volatility series, proceeding without it", err)
	}

	classifier := regime.NewClassifier(cfg.Classifier, zapLogger)
	records, report := classifier.Run(series.FromPrices(benchmarkSamples), series.FromVolatility(volatilitySamples))

	written, err := store.Persist(ctx, records)
	if err != nil {
		zapLogger.Fatalf("%s: persist interrupted after %d rows", err, written)
	}

	zapLogger.Infof("persisted %d/%d regime rows", written, report.Records)
	for label, count := range report.Histogram {
		zapLogger.Infof("label %s: %d days", label, count)
	}
}

func interval(cfg config.ClassifierConfig) (time.Time, time.Time) {
	to := cfg.To
	if to.IsZero() {
		to = time.Now().UTC()
	}
	from := cfg.From
	if from.IsZero() {
		// enough history for the SMA window plus weekend/holiday slack
		from = to.AddDate(0, 0, -(cfg.SMAWindow*2 + 30))
	}
	return from, to
}
