package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// reportsCmd represents the reports command
var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List reports exported to object storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap()
		if err != nil {
			return err
		}
		defer app.close()

		exp, err := app.exporter()
		if err != nil {
			return err
		}
		if exp == nil {
			return errors.New("report export is disabled (set report.enabled)")
		}

		objs, err := exp.List(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println("\n=== Exported Reports ===")
		for _, o := range objs {
			fmt.Printf("%s  %s  %d bytes  %s\n", o.LastModified.Format("2006-01-02 15:04:05"), o.RunID, o.Size, o.Key)
		}
		fmt.Printf("\nTotal Reports: %d\n", len(objs))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(reportsCmd)
}
