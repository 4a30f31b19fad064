package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var dropPending bool

var webhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Manage the webhook registration without serving",
}

var webhookSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Point the bot at the configured webhook URL",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := buildApp(false)
		if err != nil {
			return err
		}
		defer app.bot.Close()
		drop := dropPending || app.cfg.Webhook.DropPending
		if err := app.bot.SetWebhook(cmd.Context(), app.webReg.URL(), drop); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "webhook set: %s\n", app.webReg.Redacted())
		return nil
	},
}

var webhookDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the webhook registration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := buildApp(false)
		if err != nil {
			return err
		}
		defer app.bot.Close()
		if err := app.bot.DeleteWebhook(cmd.Context(), dropPending); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "webhook deleted")
		return nil
	},
}

var webhookInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the webhook status reported by Telegram",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := buildApp(false)
		if err != nil {
			return err
		}
		defer app.bot.Close()
		info, err := app.bot.WebhookInfo(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		url := info.URL
		if url == "" {
			url = "(none)"
		}
		fmt.Fprintf(out, "url:              %s\n", url)
		fmt.Fprintf(out, "pending updates:  %d\n", info.PendingUpdateCount)
		if info.LastErrorMessage != "" {
			fmt.Fprintf(out, "last error:       %s (%s)\n", info.LastErrorMessage,
				time.Unix(int64(info.LastErrorDate), 0).UTC().Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	webhookSetCmd.Flags().BoolVar(&dropPending, "drop-pending", false, "discard updates queued while no webhook was set")
	webhookDeleteCmd.Flags().BoolVar(&dropPending, "drop-pending", false, "discard queued updates")
	webhookCmd.AddCommand(webhookSetCmd, webhookDeleteCmd, webhookInfoCmd)
	rootCmd.AddCommand(webhookCmd)
}
