package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"channelscope/agents/channel-analyzer/analysis"
	"channelscope/internal/models"
	"channelscope/shared/config"
)

type Sender struct {
	config *config.EmailConfig
}

func NewSender(cfg *config.EmailConfig) *Sender {
	return &Sender{
		config: cfg,
	}
}

// AnalysisReport is the payload rendered into the notification email.
type AnalysisReport struct {
	Date     time.Time
	Analysis *analysis.Report
	Advice   *models.Advice
}

func (s *Sender) SendReport(report *AnalysisReport) error {
	if report == nil || report.Analysis == nil {
		return fmt.Errorf("report cannot be nil")
	}

	subject := fmt.Sprintf("Channel Analysis - %s (%s)",
		report.Analysis.Channel.Title, report.Date.Format("Jan 2, 2006"))

	body, err := s.generateEmailBody(report)
	if err != nil {
		return fmt.Errorf("failed to generate email body: %w", err)
	}

	return s.SendHTML(subject, body)
}

// SendHTML sends an email with custom HTML content
func (s *Sender) SendHTML(subject, htmlBody string) error {
	return s.sendViaSMTP(subject, htmlBody)
}

func (s *Sender) sendViaSMTP(subject, body string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.SMTPServer)

	to := []string{s.config.ToEmail}
	msg := []byte(fmt.Sprintf(`To: %s
From: %s
Subject: %s
MIME-Version: 1.0
Content-Type: text/html; charset=UTF-8

%s`, s.config.ToEmail, s.config.FromEmail, subject, body))

	addr := fmt.Sprintf("%s:%d", s.config.SMTPServer, s.config.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.FromEmail, to, msg)
}

// reportTemplate is inlined rather than read from disk so the binary
// works from any working directory.
const reportTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: sans-serif; max-width: 720px; margin: 0 auto;">
  <h1>{{.Analysis.Channel.Title}}</h1>
  <p>{{.Analysis.Count}} videos analyzed on {{.Date.Format "Jan 2, 2006"}}</p>

  <h2>Channel Stats</h2>
  <ul>
    <li>Average views: {{printf "%.0f" .Analysis.Stats.AvgViews}} (median {{printf "%.0f" .Analysis.Stats.MedianViews}})</li>
    <li>Average engagement: {{printf "%.2f" .Analysis.Stats.AvgEngagement}}%</li>
    {{if .Analysis.Posting.BestDay}}<li>Best posting day: {{.Analysis.Posting.BestDay}}</li>{{end}}
    <li>Posting pattern: {{.Analysis.Frequency.Pattern}}</li>
  </ul>

  {{if .Analysis.Top}}
  <h2>Top Videos</h2>
  <ol>
    {{range .Analysis.Top}}<li>{{.Title}} ({{.Views}} views)</li>{{end}}
  </ol>
  {{end}}

  {{if .Advice}}
  <h2>Advice</h2>
  {{range .Advice.Sections}}
    <h3>{{.Title}}</h3>
    {{range .Content}}<p>{{.}}</p>{{end}}
    {{range .Subsections}}
      <h4>{{.Title}}</h4>
      {{range .Content}}<p>{{.}}</p>{{end}}
    {{end}}
  {{end}}
  {{end}}
</body>
</html>`

func (s *Sender) generateEmailBody(report *AnalysisReport) (string, error) {
	tmpl, err := template.New("email").Parse(reportTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, report); err != nil {
		return "", err
	}

	return buf.String(), nil
}
