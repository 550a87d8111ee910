// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/genai"

	"github.com/pdiddy/idea-refinery/internal/critique"
	"github.com/pdiddy/idea-refinery/internal/history"
	"github.com/pdiddy/idea-refinery/internal/notify"
	"github.com/pdiddy/idea-refinery/internal/pipeline"
	"github.com/pdiddy/idea-refinery/internal/secrets"
	"github.com/pdiddy/idea-refinery/internal/speech"
	"github.com/pdiddy/idea-refinery/pkg/types"
)

const (
	defaultCritiqueModel = "gemini-2.0-flash-exp"
	defaultSpeechModel   = "gemini-2.5-flash-preview-tts"
	defaultVoice         = "Charon"
	defaultRecipient     = "daniel@danielrosehill.com"
	defaultSender        = "Herman Poppleberry <noreply@danielrosehill.co.il>"
	defaultSubject       = "Your Business Idea Analysis from Herman Poppleberry"
	defaultPromptPath    = "design/system-prompt.md"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process every pending business idea",
	Long: `Run critiques each .md file in the pending queue, generates the spoken,
Markdown, and PDF renditions, optionally emails them, and archives the
source file. Failures are counted per idea; the rest of the queue still runs.`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().String("voice-style", "upbeat", "voice style for audio feedback: serious, flippant, or upbeat")
	runCmd.Flags().Bool("no-email", false, "skip sending email with results")
	runCmd.Flags().String("ideas-dir", "agent/user-ideas", "base directory for the pending/evaluated idea queues")
	runCmd.Flags().String("feedback-dir", "agent/feedback", "base directory for per-run output folders")
	runCmd.Flags().Int("max-retries", 3, "retry attempts for failed Gemini calls")

	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	styleName, _ := cmd.Flags().GetString("voice-style")
	noEmail, _ := cmd.Flags().GetBool("no-email")
	maxRetries, _ := cmd.Flags().GetInt("max-retries")

	style, err := types.ParseVoiceStyle(styleName)
	if err != nil {
		return err
	}

	cfg, err := buildConfig(cmd, style, noEmail, maxRetries)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Critique.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return fmt.Errorf("%w: creating Gemini client: %v", types.ErrConfig, err)
	}

	store, err := history.Open(cfg.Storage.HistoryDir)
	if err != nil {
		return err
	}
	defer store.Close()

	runner := &pipeline.Runner{
		Backend: critique.NewGeminiBackend(client, cfg.Critique.Model),
		Synth:   speech.NewGeminiSynthesizer(client, cfg.Speech.Model, cfg.Speech.Voice),
		Mailer:  notify.NewMailer(cfg.Mail, os.Stdout),
		History: store,
		Config:  cfg,
	}

	result, err := runner.Run(ctx, os.Stdout)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return fmt.Errorf("interrupted")
	}
	if result.HasFailures() {
		return fmt.Errorf("%d idea(s) failed processing", result.Failed)
	}
	return nil
}

// buildConfig assembles the pipeline configuration from flags, environment,
// key files, and config-file defaults. Everything downstream receives this
// struct; nothing reads the environment after it returns.
func buildConfig(cmd *cobra.Command, style types.VoiceStyle, noEmail bool, maxRetries int) (types.PipelineConfig, error) {
	ideasDir, _ := cmd.Flags().GetString("ideas-dir")
	feedbackDir, _ := cmd.Flags().GetString("feedback-dir")

	geminiKey := secrets.Resolve(loadedSecrets, "GEMINI_API_KEY", "gemini-api-key", "")
	if geminiKey == "" {
		return types.PipelineConfig{}, fmt.Errorf("%w: GEMINI_API_KEY environment variable is required", types.ErrConfig)
	}

	resendKey := secrets.Resolve(loadedSecrets, "RESEND_API_KEY", "resend-api-key", "")
	recipient := secrets.Resolve(loadedSecrets, "USER_EMAIL", "recipient-email", defaultRecipient)

	if resendKey == "" && !noEmail {
		fmt.Fprintln(os.Stderr, "warning: RESEND_API_KEY not set, email delivery disabled")
	}

	cfg := types.PipelineConfig{
		Critique: types.CritiqueConfig{
			AIConfig: types.AIConfig{
				Model:      viperDefault("critique_model", defaultCritiqueModel),
				APIKey:     geminiKey,
				MaxRetries: maxRetries,
			},
			SystemPromptPath: viperDefault("system_prompt", defaultPromptPath),
		},
		Speech: types.SpeechConfig{
			Model: viperDefault("speech_model", defaultSpeechModel),
			Voice: viperDefault("voice", defaultVoice),
			Style: style,
		},
		Mail: types.MailConfig{
			APIKey:  resendKey,
			From:    viperDefault("mail_from", defaultSender),
			To:      recipient,
			Subject: viperDefault("mail_subject", defaultSubject),
			Enabled: !noEmail && resendKey != "",
		},
		Storage: types.StorageConfig{
			PendingDir:   filepath.Join(ideasDir, "pending"),
			EvaluatedDir: filepath.Join(ideasDir, "evaluated"),
			FeedbackDir:  feedbackDir,
			HistoryDir:   viperDefault("history_dir", "agent/history"),
		},
	}
	return cfg, nil
}

// viperDefault returns the config-file value for key, or fallback.
func viperDefault(key, fallback string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}
