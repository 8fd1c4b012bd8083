package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "jxlaq",
	Short: "Adaptive quantization field estimator for a JPEG XL-style encoder",
	Long: `jxlaq loads an image, runs the psychovisual adaptive quantization
field estimator against it, and reports the resulting per-block quant
field and (optionally) a false-color heatmap of the search.`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"jxlaq %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[jxlaq] "+format+"\n", args...)
	}
}
