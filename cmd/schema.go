package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Creates the posts table for standalone setups",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appConfig, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.store.EnsureSchema(cmd.Context()); err != nil {
			return err
		}
		logger.Info("schema ready", zap.String("driver", appConfig.Store.Driver), zap.String("tablePrefix", appConfig.Store.TablePrefix))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
