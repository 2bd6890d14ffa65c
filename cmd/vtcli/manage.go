package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/api"
	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/config"
	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/logging"
	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/transport"
)

// newAPIClient validates the config and builds a client for the one-shot
// management commands.
func newAPIClient(cfg *config.Config) (*api.Client, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return api.NewClient(cfg, transport.NewRetrier(cfg.MaxRetries, cfg.RetryBaseDelay)), nil
}

// printJSON writes v pretty-printed to stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func newStatusCmd(cfg *config.Config) *cobra.Command {
	var translationID, iterationID string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show a translation or iteration status record",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient(cfg)
			if err != nil {
				return err
			}
			ctx, cancel := workflowContext()
			defer cancel()

			if iterationID != "" {
				it, err := client.GetIteration(ctx, translationID, iterationID)
				if err != nil {
					return err
				}
				return printJSON(it)
			}

			t, err := client.GetTranslation(ctx, translationID)
			if err != nil {
				return err
			}
			return printJSON(t)
		},
	}
	cmd.Flags().StringVar(&translationID, "translation", "", "Translation id")
	cmd.Flags().StringVar(&iterationID, "iteration", "", "Iteration id (optional)")
	cmd.MarkFlagRequired("translation")
	return cmd
}

func newListCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List translation jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient(cfg)
			if err != nil {
				return err
			}
			ctx, cancel := workflowContext()
			defer cancel()

			page, err := client.ListTranslations(ctx)
			if err != nil {
				return err
			}
			if len(page.Value) == 0 {
				logging.Info("no translations found")
				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Status", "Source", "Target", "Created"})
			for _, t := range page.Value {
				source, target := "", ""
				if t.Input != nil {
					source, target = t.Input.SourceLocale, t.Input.TargetLocale
				}
				table.Append([]string{t.ID, t.Status, source, target, t.CreatedDateTime})
			}
			table.Render()

			if page.NextLink != "" {
				logging.Info("more results available server-side")
			}
			return nil
		},
	}
}

func newDeleteCmd(cfg *config.Config) *cobra.Command {
	var translationID string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a translation job and its server-side artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient(cfg)
			if err != nil {
				return err
			}
			ctx, cancel := workflowContext()
			defer cancel()

			if err := client.DeleteTranslation(ctx, translationID); err != nil {
				return err
			}
			logging.Success("translation " + translationID + " deleted")
			return nil
		},
	}
	cmd.Flags().StringVar(&translationID, "translation", "", "Translation id to delete")
	cmd.MarkFlagRequired("translation")
	return cmd
}
