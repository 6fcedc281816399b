package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shpitdev/cold-outreach-pipeline/internal/app"
	"github.com/shpitdev/cold-outreach-pipeline/internal/config"
	"github.com/shpitdev/cold-outreach-pipeline/internal/llm"
	"github.com/shpitdev/cold-outreach-pipeline/internal/llm/gemini"
	"github.com/shpitdev/cold-outreach-pipeline/internal/llm/openai"
	"github.com/shpitdev/cold-outreach-pipeline/internal/logging"
	"github.com/shpitdev/cold-outreach-pipeline/internal/mail"
	"github.com/shpitdev/cold-outreach-pipeline/internal/mail/httpmail"
)

var (
	flagInput      string
	flagLimit      int
	flagLLM        string
	flagDryRun     bool
	flagVerbose    bool
	flagOutput     string
	flagSecrets    string
	flagProfile    string
	flagTemplates  string
	flagAgentsPath string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "outreach",
		Short:         "Generate personalized cold outreach emails from a prospect file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&flagInput, "input", "i", "", "prospect CSV or Excel file (required)")
	root.PersistentFlags().IntVarP(&flagLimit, "limit", "l", 0, "process at most N prospects (0 = all)")
	root.PersistentFlags().StringVar(&flagLLM, "llm", "gemini", "LLM backend for research: gemini or openai")
	root.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "debug logging on stderr")
	root.PersistentFlags().StringVar(&flagSecrets, "secrets", config.DefaultSecretsPath, "secrets env file")
	root.PersistentFlags().StringVar(&flagProfile, "profile", config.DefaultProfilePath, "sender profile YAML")
	root.PersistentFlags().StringVar(&flagTemplates, "templates", config.DefaultTemplatesPath, "email templates YAML")
	root.PersistentFlags().StringVar(&flagAgentsPath, "agents", config.DefaultAgentConfigPath, "agent personas YAML")
	_ = root.MarkPersistentFlagRequired("input")

	preview := &cobra.Command{
		Use:   "preview",
		Short: "Generate emails without creating drafts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), false, func(ctx context.Context, a *app.App) error {
				return a.RunPreview(ctx, flagInput, flagLimit, flagOutput)
			})
		},
	}
	preview.Flags().StringVarP(&flagOutput, "output", "o", config.DefaultPreviewOutput, "where to save generated previews")

	draft := &cobra.Command{
		Use:   "draft",
		Short: "Generate emails and create drafts via the mail service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), true, func(ctx context.Context, a *app.App) error {
				return a.RunDraft(ctx, flagInput, flagLimit, flagOutput)
			})
		},
	}
	draft.Flags().StringVarP(&flagOutput, "output", "o", config.DefaultDraftOutput, "where to save draft outcomes")
	draft.Flags().BoolVar(&flagDryRun, "dry-run", false, "record drafts locally instead of calling the mail service")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the prospect file without generating anything",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), false, func(ctx context.Context, a *app.App) error {
				return a.RunValidate(ctx, flagInput, flagLimit)
			})
		},
	}

	root.AddCommand(preview, draft, validateCmd)
	return root
}

// withApp resolves configuration, sets up logging, and hands a ready App to
// fn. needsMailer is true for operations that create drafts.
func withApp(ctx context.Context, needsMailer bool, fn func(context.Context, *app.App) error) error {
	settings, err := config.LoadSecrets(flagSecrets)
	if err != nil {
		return err
	}
	settings.Verbose = settings.Verbose || flagVerbose

	closeLogs, err := logging.Setup(settings.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = closeLogs() }()

	profile, err := config.LoadProfile(flagProfile)
	if err != nil {
		return err
	}
	templates, err := config.LoadTemplates(flagTemplates)
	if err != nil {
		return err
	}
	agents, err := config.LoadAgentConfigs(flagAgentsPath)
	if err != nil {
		return err
	}

	a := &app.App{
		Settings:  settings,
		Profile:   profile,
		Templates: templates,
		Agents:    agents,
		LLM:       buildLLM(ctx, settings),
		Mailer:    buildMailer(settings, needsMailer),
	}
	return fn(ctx, a)
}

// buildLLM returns nil when the selected backend has no API key or the run
// is a dry run; research then runs on its offline heuristics.
func buildLLM(ctx context.Context, s config.Settings) llm.Client {
	if flagDryRun {
		return nil
	}
	switch flagLLM {
	case "openai":
		if s.OpenAIAPIKey == "" {
			slog.Warn("OPENAI_API_KEY not set, research runs offline")
			return nil
		}
		c, err := openai.New(openai.Config{APIKey: s.OpenAIAPIKey})
		if err != nil {
			slog.Warn("openai client unavailable, research runs offline", "err", err)
			return nil
		}
		return c
	case "gemini":
		if s.GoogleAPIKey == "" {
			slog.Warn("GOOGLE_API_KEY not set, research runs offline")
			return nil
		}
		c, err := gemini.New(ctx, gemini.Config{APIKey: s.GoogleAPIKey})
		if err != nil {
			slog.Warn("gemini client unavailable, research runs offline", "err", err)
			return nil
		}
		return c
	default:
		slog.Warn("unknown llm backend, research runs offline", "backend", flagLLM)
		return nil
	}
}

func buildMailer(s config.Settings, needsMailer bool) mail.Mailer {
	if !needsMailer || flagDryRun || s.MailBaseURL == "" {
		if needsMailer && !flagDryRun && s.MailBaseURL == "" {
			slog.Warn("MAIL_API_BASE_URL not set, drafts are recorded locally")
		}
		return &mail.DryRunMailer{}
	}
	c, err := httpmail.NewClient(s.MailBaseURL, s.MailToken, s.RequestTimeout)
	if err != nil {
		slog.Warn("mail client unavailable, drafts are recorded locally", "err", err)
		return &mail.DryRunMailer{}
	}
	return c
}
