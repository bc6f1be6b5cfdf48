package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// setters maps the dotted vaultdesk.json keys accepted by Set.
var setters = map[string]func(cfg *Config, value string) error{
	"name":       func(c *Config, v string) error { c.Name = v; return nil },
	"version":    func(c *Config, v string) error { c.Version = v; return nil },
	"marketFile": func(c *Config, v string) error { c.MarketFile = v; return nil },
	"defaultIlk": func(c *Config, v string) error { c.DefaultIlk = v; return nil },

	"logging.level":      func(c *Config, v string) error { c.Logging.Level = v; return nil },
	"logging.file":       func(c *Config, v string) error { c.Logging.File = v; return nil },
	"logging.maxSizeMB":  intSetter(func(c *Config) *int { return &c.Logging.MaxSizeMB }),
	"logging.maxBackups": intSetter(func(c *Config) *int { return &c.Logging.MaxBackups }),
	"logging.maxAgeDays": intSetter(func(c *Config) *int { return &c.Logging.MaxAgeDays }),

	"session.owner":        func(c *Config, v string) error { c.Session.Owner = v; return nil },
	"session.proxyAddress": func(c *Config, v string) error { c.Session.ProxyAddress = v; return nil },
	"session.allowance":    func(c *Config, v string) error { c.Session.Allowance = v; return nil },
	"session.chainDelayMs": intSetter(func(c *Config) *int { return &c.Session.ChainDelayMs }),
	"session.firstVaultId": intSetter(func(c *Config) *int { return &c.Session.FirstVaultID }),
	"session.failStages": func(c *Config, v string) error {
		c.Session.FailStages = nil
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				c.Session.FailStages = append(c.Session.FailStages, tag)
			}
		}
		return nil
	},

	"display.percentPrecision": intSetter(func(c *Config) *int { return &c.Display.PercentPrecision }),
	"display.noColor": func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("not a boolean: %q", v)
		}
		c.Display.NoColor = b
		return nil
	},
}

func intSetter(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("not an integer: %q", v)
		}
		*field(c) = n
		return nil
	}
}

// Keys lists the keys Set accepts, sorted.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set assigns one key of the loaded config and writes the result back with
// Save. A session.failStages value is a comma separated list; an empty value
// clears it. The write is refused when the new value fails validation;
// problems in other keys do not block it.
func Set(key, value string) error {
	set, ok := setters[key]
	if !ok {
		return fmt.Errorf("unknown key %q; available: %v", key, Keys())
	}

	cfg := *Get()
	cfg.Session.FailStages = append([]string(nil), cfg.Session.FailStages...)
	if err := set(&cfg, value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	for _, e := range Validate(&cfg) {
		if e.Field == key || strings.HasPrefix(e.Field, key+"[") {
			return e
		}
	}
	return Save(&cfg)
}
