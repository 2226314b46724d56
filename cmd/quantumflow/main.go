// Command quantumflow is the process entrypoint: it loads the optional
// YAML configuration, wires the ring, the ingress endpoint, the
// per-symbol price registry and the strategy engine into a pipeline.Loop,
// and runs it until SIGINT/SIGTERM.
package main

import (
	"context"
	"flag"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/quantumflow/quantumflow/internal/config"
	"github.com/quantumflow/quantumflow/internal/ingress"
	"github.com/quantumflow/quantumflow/internal/pipeline"
	"github.com/quantumflow/quantumflow/internal/price"
	"github.com/quantumflow/quantumflow/internal/ring"
	"github.com/quantumflow/quantumflow/internal/strategy"
)

func main() {
	var configPath string
	var logLevel string
	flag.StringVar(&configPath, "config", "", "path to a YAML config file (optional)")
	flag.StringVar(&logLevel, "log-level", "info", "debug, info, warn, or error")
	flag.Parse()

	logger := newLogger(logLevel)
	defer logger.Sync()

	var cfg config.Config
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			logger.Error("failed to load config", zap.Error(err))
			os.Exit(1)
		}
		cfg = *loaded
	}

	r, err := newRing(cfg.Ring)
	if err != nil {
		logger.Error("failed to build ring", zap.Error(err))
		os.Exit(1)
	}

	var endpoint *ingress.Endpoint
	if cfg.Ingress.SocketPath != "" {
		endpoint, err = ingress.Bind(cfg.Ingress.SocketPath)
		if err != nil {
			// Bind failure is fatal to the endpoint only; the ring path still works.
			logger.Warn("ingress bind failed, continuing on the ring alone", zap.Error(err))
		} else {
			defer endpoint.Close()
		}
	}

	prices := newPriceRegistry(cfg.Symbols)
	engine := newStrategyEngine(logger, cfg.Strategies)
	loop := pipeline.New(logger, r, endpoint, prices, engine, cfg.DefaultSymbol())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 2)
	ossignal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal")
		cancel()
	}()

	logger.Info("starting main loop",
		zap.Int("ring_capacity", r.Capacity()),
		zap.String("active_symbol", cfg.DefaultSymbol()),
	)

	loop.Run(ctx, nowNanos)

	logger.Info("shut down",
		zap.Uint64("ring_push", r.PushCount()),
		zap.Uint64("ring_pop", r.PopCount()),
		zap.Uint64("ring_drop", r.DropCount()),
	)
	if endpoint != nil {
		logger.Info("ingress totals",
			zap.Uint64("rx", endpoint.RxCount()),
			zap.Uint64("bad", endpoint.BadCount()),
		)
	}
}

func nowNanos() uint64 {
	return uint64(time.Now().UnixNano())
}

func newRing(cfg config.RingConfig) (*ring.Ring, error) {
	capacity := cfg.Capacity
	if capacity == 0 {
		capacity = ring.DefaultCapacity
	}
	return ring.New(capacity)
}

func newPriceRegistry(symbols []config.SymbolConfig) *price.Registry {
	reg := price.NewRegistry(price.DefaultScale)
	for _, s := range symbols {
		if s.Scale != 0 {
			reg.SetScale(s.Name, s.Scale)
		}
	}
	return reg
}

func newStrategyEngine(logger *zap.Logger, cfg config.StrategiesConfig) *strategy.Engine {
	engine := strategy.NewEngine(logger)

	if c := cfg.OrderBookImbalance; c != nil {
		engine.AddStrategy(strategy.NewOrderBookImbalance(c.TopN, c.Threshold))
	}
	if c := cfg.MarketMaker; c != nil {
		engine.AddStrategy(strategy.NewMarketMaker(c.MaxInventory, c.BaseSpread))
	}
	if c := cfg.VWAPExecutor; c != nil {
		engine.AddStrategy(strategy.NewVWAPExecutor(c.TotalQuantity, c.HorizonMs, c.VolumeProfile))
	}
	if c := cfg.LiquidityDetector; c != nil {
		engine.AddStrategy(strategy.NewLiquidityDetector(c.MinFills, c.MinVolume, c.PriceTolerance))
	}
	if c := cfg.FundingArbitrage; c != nil {
		engine.AddStrategy(strategy.NewFundingArbitrage(c.FundingThreshold))
	}
	if c := cfg.Momentum; c != nil {
		engine.AddStrategy(strategy.NewMomentumStrategy(c.Window, c.Threshold))
	}
	if c := cfg.PairsTrading; c != nil {
		engine.AddStrategy(strategy.NewPairsTrading(c.Beta, c.Window, c.ZThreshold))
	}

	return engine
}

func newLogger(level string) *zap.Logger {
	lvl := zapcore.InfoLevel
	if err := lvl.Set(level); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
