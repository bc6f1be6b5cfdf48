package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Dallionking/vaultdesk/internal/config"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "vaultdesk",
	Short: "Open a collateralized debt vault from the terminal",
	Long: `vaultdesk walks through opening a Maker-style vault: pick an amount of
collateral, generate Dai against it, set up a proxy and token allowance,
and create the vault, with every derived figure shown as you type.

Transactions run against a simulated chain; market data is read from the
market file named in vaultdesk.json and reloaded when it changes.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("vaultdesk " + Version)
		fmt.Println("Run 'vaultdesk --help' for available commands")
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is vaultdesk.json in the project root)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable color output")
}

// initConfig lets VAULTDESK_* environment variables set the global flags.
func initConfig() {
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlags(rootCmd.PersistentFlags())

	cfgFile = viper.GetString("config")
	verbose = viper.GetBool("verbose")
	noColor = viper.GetBool("no-color")
	if noColor {
		os.Setenv("NO_COLOR", "1")
	}
}

// loadProject reads the config and applies the --verbose and --no-color
// overrides on top of it.
func loadProject() (*config.Config, *config.Paths, error) {
	cfg, err := readConfig()
	if err != nil {
		return nil, nil, err
	}

	if verbose {
		cfg.Logging.Level = "debug"
	}
	if cfg.Display.NoColor && !noColor {
		os.Setenv("NO_COLOR", "1")
	}
	return cfg, config.NewPaths(config.Root()), nil
}

// readConfig loads the --config file, or vaultdesk.json from the detected
// project root, falling back to the defaults rooted at the working directory.
func readConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case cfgFile != "":
		cfg, err = config.LoadFile(cfgFile)
	default:
		root, rootErr := config.DetectProjectRoot()
		if rootErr != nil {
			wd, wdErr := os.Getwd()
			if wdErr != nil {
				return nil, fmt.Errorf("getting working directory: %w", wdErr)
			}
			cfg, err = config.LoadDefaults(wd)
		} else {
			cfg, err = config.Load(root)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
