package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Dallionking/vaultdesk/internal/vat"
)

// MarketFile is the market data file referenced by config.marketFile.
type MarketFile struct {
	UpdatedAt time.Time    `json:"updatedAt"`
	Markets   []MarketSpec `json:"markets"`
}

// MarketSpec describes one ilk: its risk parameters, the raw vat tuple and
// the oracle price.
type MarketSpec struct {
	Ilk   string `json:"ilk"`
	Token string `json:"token"`

	LiquidationRatio                  decimal.Decimal `json:"liquidationRatio"`
	StabilityFee                      decimal.Decimal `json:"stabilityFee"`
	LiquidationPenalty                decimal.Decimal `json:"liquidationPenalty"`
	CollateralizationDangerThreshold  decimal.Decimal `json:"collateralizationDangerThreshold"`
	CollateralizationWarningThreshold decimal.Decimal `json:"collateralizationWarningThreshold"`

	Vat         vat.RawIlk          `json:"vat"`
	Price       PriceSpec           `json:"price"`
	MarketPrice decimal.NullDecimal `json:"marketPrice"`
}

// PriceSpec is the oracle price block of a market.
type PriceSpec struct {
	Current          decimal.Decimal `json:"current"`
	Next             decimal.Decimal `json:"next"`
	NextUpdate       time.Time       `json:"nextUpdate"`
	Static           bool            `json:"static"`
	PercentageChange decimal.Decimal `json:"percentageChange"`
}

// LoadMarketFile reads a market file from an absolute or
// project-root-relative path.
func LoadMarketFile(path string) (*MarketFile, error) {
	if !filepath.IsAbs(path) {
		root := Root()
		if root == "" {
			return nil, fmt.Errorf("cannot resolve relative market file path: project root not set")
		}
		path = filepath.Join(root, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading market file %s: %w", path, err)
	}
	return ParseMarketFile(data)
}

// ParseMarketFile decodes market file contents.
func ParseMarketFile(data []byte) (*MarketFile, error) {
	var mf MarketFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parsing market file: %w", err)
	}
	for i, m := range mf.Markets {
		if m.Ilk == "" {
			return nil, fmt.Errorf("market %d: ilk is empty", i)
		}
	}
	return &mf, nil
}

// Find returns the market for ilk, matched case-insensitively.
func (mf *MarketFile) Find(ilk string) (*MarketSpec, error) {
	for i := range mf.Markets {
		if strings.EqualFold(mf.Markets[i].Ilk, ilk) {
			return &mf.Markets[i], nil
		}
	}
	return nil, fmt.Errorf("ilk %q not found; available: %v", ilk, mf.Ilks())
}

// Ilks returns the ilk names in the file, sorted alphabetically.
func (mf *MarketFile) Ilks() []string {
	names := make([]string, 0, len(mf.Markets))
	for _, m := range mf.Markets {
		names = append(names, m.Ilk)
	}
	sort.Strings(names)
	return names
}
