package commands

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/dharmasatrya/flightfinder/internal/config"
	"github.com/dharmasatrya/flightfinder/pkg/logger"
)

func setup(cmd *cobra.Command) (*config.Config, *logger.ZapLogger) {
	cfg := config.Load()
	debug, _ := cmd.Flags().GetBool("debug")
	return cfg, logger.NewLogger(debug || cfg.Debug)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
