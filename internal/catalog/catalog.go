// Package catalog holds the static asset catalog the dashboard operates on.
// The catalog is configuration, not user-editable state: symbols, display
// names, and chart colors are fixed for the lifetime of a session.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Asset describes one tradeable instrument known to the dashboard.
type Asset struct {
	Symbol string `yaml:"symbol" json:"symbol"`
	Name   string `yaml:"name" json:"name"`
	Color  string `yaml:"color" json:"color"`
}

// Catalog is an ordered, read-only collection of assets keyed by symbol.
type Catalog struct {
	assets []Asset
	index  map[string]int
}

// New builds a catalog from the given assets. Duplicate symbols are rejected
// since symbol is the unique key for holdings and orders.
func New(assets []Asset) (*Catalog, error) {
	if len(assets) == 0 {
		return nil, fmt.Errorf("catalog must contain at least one asset")
	}

	index := make(map[string]int, len(assets))
	for i, a := range assets {
		if a.Symbol == "" {
			return nil, fmt.Errorf("catalog entry %d has empty symbol", i)
		}
		if _, exists := index[a.Symbol]; exists {
			return nil, fmt.Errorf("duplicate catalog symbol: %s", a.Symbol)
		}
		index[a.Symbol] = i
	}

	return &Catalog{assets: assets, index: index}, nil
}

// Default returns the built-in asset catalog used when no catalog file is
// configured.
func Default() *Catalog {
	c, err := New([]Asset{
		{Symbol: "BTC", Name: "Bitcoin", Color: "#f7931a"},
		{Symbol: "ETH", Name: "Ethereum", Color: "#627eea"},
		{Symbol: "SOL", Name: "Solana", Color: "#9945ff"},
		{Symbol: "DOGE", Name: "Dogecoin", Color: "#c2a633"},
	})
	if err != nil {
		// The built-in catalog is a compile-time constant; this cannot fail.
		panic(err)
	}
	return c
}

// catalogFile is the YAML shape of an on-disk catalog.
type catalogFile struct {
	Assets []Asset `yaml:"assets"`
}

// LoadFile reads an asset catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	return New(file.Assets)
}

// Assets returns the catalog entries in declaration order.
func (c *Catalog) Assets() []Asset {
	out := make([]Asset, len(c.assets))
	copy(out, c.assets)
	return out
}

// Lookup returns the asset for a symbol.
func (c *Catalog) Lookup(symbol string) (Asset, bool) {
	i, ok := c.index[symbol]
	if !ok {
		return Asset{}, false
	}
	return c.assets[i], true
}

// Has reports whether the symbol is part of the catalog.
func (c *Catalog) Has(symbol string) bool {
	_, ok := c.index[symbol]
	return ok
}

// Color returns the chart color configured for a symbol, or a neutral
// fallback when the symbol is unknown.
func (c *Catalog) Color(symbol string) string {
	if a, ok := c.Lookup(symbol); ok && a.Color != "" {
		return a.Color
	}
	return "#888888"
}
