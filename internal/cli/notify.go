package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/facet/internal/config"
	"github.com/dshills/facet/internal/logging"
	"github.com/dshills/facet/internal/notify"
	"github.com/dshills/facet/internal/output"
)

var (
	flagNotifyInput   string
	flagNotifyConfig  string
	flagNotifyWebhook string
	flagNotifyDryRun  bool
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Evaluate notification policy for findings and dispatch a webhook",
	Long: `Notify reads findings JSON and a YAML notification config, decides whether
the findings meet the configured severity threshold, and posts a summary to
the configured webhook. Nothing is sent when the policy suppresses the
notification. --dry-run prints the message instead of sending it.`,
	RunE: runNotify,
}

func init() {
	notifyCmd.Flags().StringVar(&flagNotifyInput, "input", "", "Findings JSON file (default: stdin)")
	notifyCmd.Flags().StringVar(&flagNotifyConfig, "config", "", "Notification config YAML file")
	notifyCmd.Flags().StringVar(&flagNotifyWebhook, "webhook", "", "Webhook URL (overrides config)")
	notifyCmd.Flags().BoolVar(&flagNotifyDryRun, "dry-run", false, "Print the message without sending")
}

func runNotify(cmd *cobra.Command, args []string) error {
	findings, octx, err := readFindings(flagNotifyInput)
	if err != nil {
		exitCode = ExitRuntimeError
		return err
	}

	cfg := notify.DefaultConfig()
	if flagNotifyConfig != "" {
		data, readErr := os.ReadFile(flagNotifyConfig)
		if readErr != nil {
			exitCode = ExitRuntimeError
			return fmt.Errorf("reading notification config: %w", readErr)
		}
		cfg, err = config.LoadNotificationYAML(data)
		if err != nil {
			exitCode = ExitRuntimeError
			return err
		}
	}
	if flagNotifyWebhook != "" {
		cfg.WebhookURL = flagNotifyWebhook
		cfg.Enabled = true
	}

	if !notify.ShouldNotify(findings, cfg) {
		fmt.Fprintln(os.Stdout, "notification suppressed by policy")
		return nil
	}

	if flagNotifyDryRun {
		msg := notify.BuildMessage(findings, cfg, octx)
		_, err = os.Stdout.WriteString(msg.Text)
		return err
	}

	sender := notify.NewWebhookSender(notify.DefaultWebhookSenderConfig())
	engine := notify.NewEngine(cfg, sender, logging.NewLogger("facet"))
	if err := engine.Notify(context.Background(), findings, octx); err != nil {
		exitCode = ExitRuntimeError
		return err
	}

	fmt.Fprintln(os.Stdout, "notification sent")
	return nil
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List registered output formats",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range output.NewRegistry().Formats() {
			fmt.Fprintln(os.Stdout, name)
		}
	},
}
