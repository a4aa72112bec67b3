package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// connectionsCmd represents the connections command
var connectionsCmd = &cobra.Command{
	Use:   "connections",
	Short: "Validate the configured database connections",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, _ := cmd.Flags().GetBool("stats")

		app, err := bootstrap()
		if err != nil {
			return err
		}
		defer app.close()

		ctx := cmd.Context()
		results := app.provider.ValidateAll(ctx)
		failed := 0

		fmt.Println("\n=== Connections ===")
		for _, name := range app.provider.Names() {
			status := "OK"
			if !results[name] {
				status = "FAILED"
				failed++
			}
			fmt.Printf("%-20s %s\n", name, status)

			if stats && results[name] {
				s, err := app.provider.Statistics(ctx, name)
				if err != nil {
					app.logger.Warn("Statistics failed", zap.String("connection", name), zap.Error(err))
					continue
				}
				fmt.Printf("  driver=%s version=%s server_time=%s open=%d in_use=%d idle=%d\n",
					s.Driver, s.Version, s.ServerTime, s.OpenConnections, s.InUse, s.Idle)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d connections failed", failed, len(results))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(connectionsCmd)
	connectionsCmd.Flags().Bool("stats", false, "Show server version, time and pool usage")
}
