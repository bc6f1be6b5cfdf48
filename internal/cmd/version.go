package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Dallionking/vaultdesk/internal/tui/components"
	"github.com/Dallionking/vaultdesk/internal/tui/styles"
)

// Build-time variables set via ldflags.
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the build version, git commit, build date, and Go runtime details.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if versionShort {
			fmt.Fprintln(out, Version)
			return
		}
		fmt.Fprintln(out, styles.Cyan(components.Logo)+"  "+styles.Value.Render("v"+Version))
		fmt.Fprintln(out)
		for _, row := range [][2]string{
			{"VERSION", Version},
			{"COMMIT", GitCommit},
			{"BUILT", BuildDate},
			{"GO", runtime.Version()},
			{"OS/ARCH", runtime.GOOS + "/" + runtime.GOARCH},
		} {
			fmt.Fprintf(out, "%s %s\n", styles.Label.Render(fmt.Sprintf("%-9s", row[0])), styles.Value.Render(row[1]))
		}
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the version")
	rootCmd.AddCommand(versionCmd)
}
