// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notify delivers critique artifacts by email through the Resend API.
package notify

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/idea-refinery/internal/httputil"
	"github.com/pdiddy/idea-refinery/pkg/types"
)

// resendEndpoint is the Resend email API. Declared as a var so tests can
// substitute an httptest server.
var resendEndpoint = "https://api.resend.com/emails"

// SetEndpointForTest points the mailer at a substitute server and returns a
// function restoring the real endpoint. Tests in other packages use this.
func SetEndpointForTest(url string) (restore func()) {
	old := resendEndpoint
	resendEndpoint = url
	return func() { resendEndpoint = old }
}

const (
	requestTimeout = 2 * time.Minute
	summaryLimit   = 200
)

// Mailer posts one email per report, with the audio, Markdown, and PDF
// artifacts attached.
type Mailer struct {
	cfg        types.MailConfig
	maxRetries int
	httpClient *http.Client
	log        io.Writer
}

// NewMailer builds a Mailer from config. The log writer receives
// rate-limit retry notices.
func NewMailer(cfg types.MailConfig, log io.Writer) *Mailer {
	return &Mailer{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: requestTimeout},
		log:        log,
	}
}

// Enabled reports whether delivery is configured and turned on.
func (m *Mailer) Enabled() bool {
	return m.cfg.Enabled && strings.TrimSpace(m.cfg.APIKey) != ""
}

// emailRequest is the Resend POST body.
type emailRequest struct {
	From        string       `json:"from"`
	To          []string     `json:"to"`
	Subject     string       `json:"subject"`
	HTML        string       `json:"html"`
	Attachments []attachment `json:"attachments"`
}

type attachment struct {
	Filename    string `json:"filename"`
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
}

// Send reads the three artifacts from the report, base64-encodes them, and
// posts a single email. HTTP 429 is retried with backoff; any other non-2xx
// status is a provider error.
func (m *Mailer) Send(ctx context.Context, rep *types.Report) error {
	if !m.Enabled() {
		return fmt.Errorf("%w: email delivery is not configured", types.ErrConfig)
	}

	attachments, err := readAttachments(rep)
	if err != nil {
		return err
	}

	payload := emailRequest{
		From:        m.cfg.From,
		To:          []string{m.cfg.To},
		Subject:     m.cfg.Subject,
		HTML:        emailBody(rep.Critique),
		Attachments: attachments,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: encoding email payload: %v", types.ErrProvider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: creating email request: %v", types.ErrProvider, err)
	}
	req.Header.Set("Authorization", "Bearer "+m.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httputil.DoWithRetry(ctx, m.httpClient, req, m.maxRetries, m.log)
	if err != nil {
		return fmt.Errorf("%w: email request failed: %v", types.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp)
	}
	return nil
}

// readAttachments loads and encodes the audio, Markdown, and PDF artifacts.
func readAttachments(rep *types.Report) ([]attachment, error) {
	specs := []struct {
		path        string
		contentType string
	}{
		{rep.AudioPath, "audio/wav"},
		{rep.MarkdownPath, "text/markdown"},
		{rep.PDFPath, "application/pdf"},
	}

	attachments := make([]attachment, 0, len(specs))
	for _, spec := range specs {
		data, err := os.ReadFile(spec.path)
		if err != nil {
			return nil, fmt.Errorf("%w: reading attachment %s: %v", types.ErrFilesystem, filepath.Base(spec.path), err)
		}
		attachments = append(attachments, attachment{
			Filename:    filepath.Base(spec.path),
			Content:     base64.StdEncoding.EncodeToString(data),
			ContentType: spec.contentType,
		})
	}
	return attachments, nil
}

// emailBody builds the HTML body with a short summary of the critique.
func emailBody(critique string) string {
	summary := critique
	if len(summary) > summaryLimit {
		summary = summary[:summaryLimit] + "..."
	}

	return fmt.Sprintf(`<h2>Business Idea Analysis Complete!</h2>
<p>Hi Daniel!</p>
<p>Herman Poppleberry here with your latest business idea analysis. I've prepared three formats for your convenience:</p>
<ul>
	<li><strong>Audio Feedback</strong> - Listen to my complete analysis</li>
	<li><strong>Markdown File</strong> - Easy to read and edit digitally</li>
	<li><strong>PDF Report</strong> - Professional printable format</li>
</ul>
<h3>Quick Summary:</h3>
<p>%s</p>
<p>All three formats contain the same comprehensive analysis and recommendations.</p>
<p>Best regards,<br>
Herman Poppleberry<br>
Your AI Business Plan Review Assistant</p>`, summary)
}

// decodeAPIError turns a non-2xx Resend response into a provider error,
// preferring the structured message when the body parses.
func decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var apiErr struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return fmt.Errorf("%w: resend api error: status %d name %s message %s",
			types.ErrProvider, resp.StatusCode, apiErr.Name, apiErr.Message)
	}
	return fmt.Errorf("%w: resend api error: status %d body %s", types.ErrProvider, resp.StatusCode, string(body))
}
