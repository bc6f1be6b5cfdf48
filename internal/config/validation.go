package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/Dallionking/vaultdesk/internal/vat"
	"github.com/Dallionking/vaultdesk/internal/vault"
)

// ValidationError describes a single config validation failure.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface for a single validation error.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the Config for completeness and consistency. It returns a
// slice of all discovered issues rather than stopping at the first one.
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	// --- Required fields ---
	if cfg.Name == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "required field is empty"})
	}
	if cfg.Version == "" {
		errs = append(errs, ValidationError{Field: "version", Message: "required field is empty"})
	}
	if cfg.MarketFile == "" {
		errs = append(errs, ValidationError{Field: "marketFile", Message: "required field is empty"})
	}

	// --- Logging ---
	if !slices.Contains(logLevels, cfg.Logging.Level) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", logLevels, cfg.Logging.Level),
		})
	}
	if cfg.Logging.MaxSizeMB <= 0 {
		errs = append(errs, ValidationError{
			Field:   "logging.maxSizeMB",
			Message: fmt.Sprintf("must be > 0, got %d", cfg.Logging.MaxSizeMB),
		})
	}
	if cfg.Logging.MaxBackups < 0 {
		errs = append(errs, ValidationError{
			Field:   "logging.maxBackups",
			Message: fmt.Sprintf("must be >= 0, got %d", cfg.Logging.MaxBackups),
		})
	}

	// --- Session ---
	s := cfg.Session
	if _, ok, err := vat.ParseProxyAddress(s.Owner); err != nil || !ok {
		errs = append(errs, ValidationError{Field: "session.owner", Message: fmt.Sprintf("must be a hex address, got %q", s.Owner)})
	}
	if _, _, err := vat.ParseProxyAddress(s.ProxyAddress); err != nil {
		errs = append(errs, ValidationError{Field: "session.proxyAddress", Message: err.Error()})
	}
	if s.Allowance != "" {
		if a, err := decimal.NewFromString(s.Allowance); err != nil {
			errs = append(errs, ValidationError{
				Field:   "session.allowance",
				Message: fmt.Sprintf("not a decimal: %q", s.Allowance),
			})
		} else if a.IsNegative() {
			errs = append(errs, ValidationError{
				Field:   "session.allowance",
				Message: fmt.Sprintf("must be >= 0, got %s", a),
			})
		}
	}
	if s.ChainDelayMs < 0 {
		errs = append(errs, ValidationError{
			Field:   "session.chainDelayMs",
			Message: fmt.Sprintf("must be >= 0, got %d", s.ChainDelayMs),
		})
	}
	if s.FirstVaultID <= 0 {
		errs = append(errs, ValidationError{
			Field:   "session.firstVaultId",
			Message: fmt.Sprintf("must be > 0, got %d", s.FirstVaultID),
		})
	}
	for i, tag := range s.FailStages {
		stage, _, err := vault.ParseStage(tag)
		if err != nil || !stage.IsFailure() {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("session.failStages[%d]", i),
				Message: fmt.Sprintf("%q is not a failure stage", tag),
			})
		}
	}

	// --- Display ---
	if p := cfg.Display.PercentPrecision; p < 0 || p > 8 {
		errs = append(errs, ValidationError{
			Field:   "display.percentPrecision",
			Message: fmt.Sprintf("must be in [0, 8], got %d", p),
		})
	}

	// --- File existence checks (only when project root is set) ---
	if Root() != "" && cfg.MarketFile != "" {
		path := Resolve(cfg.MarketFile)
		if _, err := os.Stat(path); err != nil {
			errs = append(errs, ValidationError{
				Field:   "marketFile",
				Message: fmt.Sprintf("file not found: %s", path),
			})
		}
	}

	return errs
}
