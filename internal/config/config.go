// Package config loads the optional YAML configuration file consumed by
// cmd/quantumflow. Every core package (ring, ingress, book, strategy)
// remains fully usable from plain struct literals without it — this
// package only exists to make the process entrypoint configurable.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root of the YAML configuration file.
type Config struct {
	// Ring configures the SPSC ring buffer.
	Ring RingConfig `yaml:"ring"`
	// Ingress configures the datagram endpoint.
	Ingress IngressConfig `yaml:"ingress"`
	// Symbols is the set of configured symbols and their price scales.
	Symbols []SymbolConfig `yaml:"symbols"`
	// Strategies holds per-strategy parameters, keyed by strategy kind.
	Strategies StrategiesConfig `yaml:"strategies"`
}

// RingConfig configures the SPSC ring buffer's capacity.
type RingConfig struct {
	// Capacity must be a power of two; zero selects ring.DefaultCapacity.
	Capacity int `yaml:"capacity"`
}

// IngressConfig configures the datagram ingress endpoint.
type IngressConfig struct {
	// SocketPath is the filesystem path of the Unix-domain SOCK_DGRAM
	// socket. Empty disables the ingress path entirely — the pipeline
	// then runs off the ring alone.
	SocketPath string `yaml:"socket_path"`
}

// SymbolConfig configures one symbol's price scale and the symbol the
// pipeline treats as active before any packet arrives.
type SymbolConfig struct {
	// Name is the symbol, as it appears on the wire.
	Name string `yaml:"name"`
	// Scale is the fixed-point scale factor (e.g. 100 for cents); zero
	// falls back to price.DefaultScale.
	Scale float64 `yaml:"scale"`
	// Default marks this symbol as the pipeline's initial active symbol.
	// Exactly one symbol in the list should set this.
	Default bool `yaml:"default"`
}

// StrategiesConfig holds one parameter block per concrete strategy. A
// nil block disables that strategy.
type StrategiesConfig struct {
	OrderBookImbalance *OrderBookImbalanceConfig `yaml:"order_book_imbalance"`
	MarketMaker        *MarketMakerConfig        `yaml:"market_maker"`
	VWAPExecutor       *VWAPExecutorConfig       `yaml:"vwap_executor"`
	LiquidityDetector  *LiquidityDetectorConfig  `yaml:"liquidity_detector"`
	FundingArbitrage   *FundingArbitrageConfig   `yaml:"funding_arbitrage"`
	Momentum           *MomentumConfig           `yaml:"momentum"`
	PairsTrading       *PairsTradingConfig       `yaml:"pairs_trading"`
}

// OrderBookImbalanceConfig parameterizes strategy.NewOrderBookImbalance.
type OrderBookImbalanceConfig struct {
	TopN      int     `yaml:"top_n"`
	Threshold float64 `yaml:"threshold"`
}

// MarketMakerConfig parameterizes strategy.NewMarketMaker.
type MarketMakerConfig struct {
	MaxInventory float64 `yaml:"max_inventory"`
	BaseSpread   float64 `yaml:"base_spread"`
}

// VWAPExecutorConfig parameterizes strategy.NewVWAPExecutor. An empty
// VolumeProfile lets the strategy fall back to its uniform default.
type VWAPExecutorConfig struct {
	TotalQuantity  uint64    `yaml:"total_quantity"`
	HorizonMs      uint64    `yaml:"horizon_ms"`
	VolumeProfile  []float64 `yaml:"volume_profile"`
}

// LiquidityDetectorConfig parameterizes strategy.NewLiquidityDetector.
type LiquidityDetectorConfig struct {
	MinFills       int     `yaml:"min_fills"`
	MinVolume      uint64  `yaml:"min_volume"`
	PriceTolerance float64 `yaml:"price_tolerance"`
}

// FundingArbitrageConfig parameterizes strategy.NewFundingArbitrage.
type FundingArbitrageConfig struct {
	FundingThreshold float64 `yaml:"funding_threshold"`
}

// MomentumConfig parameterizes strategy.NewMomentumStrategy.
type MomentumConfig struct {
	Window    int     `yaml:"window"`
	Threshold float64 `yaml:"threshold"`
}

// PairsTradingConfig parameterizes strategy.NewPairsTrading.
type PairsTradingConfig struct {
	Beta       float64 `yaml:"beta"`
	Window     int     `yaml:"window"`
	ZThreshold float64 `yaml:"z_threshold"`
}

// Load reads and parses the YAML file at path. It does not apply defaults
// or validate — cmd/quantumflow substitutes library defaults
// (ring.DefaultCapacity, price.DefaultScale) for zero values itself.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return &cfg, nil
}

// DefaultSymbol returns the name of the symbol marked Default, or the
// first configured symbol if none is marked, or "" if Symbols is empty.
func (c *Config) DefaultSymbol() string {
	for _, s := range c.Symbols {
		if s.Default {
			return s.Name
		}
	}
	if len(c.Symbols) > 0 {
		return c.Symbols[0].Name
	}
	return ""
}
