package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// rulesCmd represents the rules command
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the configured comparison rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap()
		if err != nil {
			return err
		}
		defer app.close()

		rules := app.runner.Rules()
		fmt.Println("\n=== Comparison Rules ===")
		for _, r := range rules {
			state := "enabled"
			if !r.Enabled {
				state = "disabled"
			}
			fmt.Printf("%s (%s)\n", r.Name, state)
			if r.Description != "" {
				fmt.Printf("  %s\n", r.Description)
			}
			fmt.Printf("  %s -> %s  key=%s field=%s\n", r.Source, r.Target, r.KeyField, r.CompareField)
			if r.Predicate != "" {
				fmt.Printf("  where %s\n", r.Predicate)
			}
		}
		fmt.Printf("\nTotal Rules: %d\n", len(rules))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(rulesCmd)
}
