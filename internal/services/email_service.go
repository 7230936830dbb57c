package services

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"followup-report/internal/config"
	"followup-report/internal/models"
)

// EmailService handles email sending via SendGrid
type EmailService struct {
	apiKey    string
	fromEmail string
	client    *sendgrid.Client
}

// NewEmailService creates a new email service
func NewEmailService(cfg config.EmailConfig) *EmailService {
	client := sendgrid.NewSendClient(cfg.APIKey)
	return &EmailService{
		apiKey:    cfg.APIKey,
		fromEmail: cfg.FromEmail,
		client:    client,
	}
}

// SendReportEmail sends the generated follow-up report to each
// recipient with the rendered document attached.
func (s *EmailService) SendReportEmail(recipients []string, result *models.GenerateReportResult, document []byte, filename string) error {
	from := mail.NewEmail("Suivi Production", s.fromEmail)
	subject := fmt.Sprintf("Suivi des actions – %s", result.GeneratedAt)

	htmlContent := s.buildReportEmailHTML(result)
	plainTextContent := s.buildReportEmailText(result)

	for _, recipient := range recipients {
		to := mail.NewEmail("", recipient)
		message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

		if len(document) > 0 {
			attachment := mail.NewAttachment()
			attachment.SetContent(base64.StdEncoding.EncodeToString(document))
			attachment.SetType("text/html")
			attachment.SetFilename(filename)
			attachment.SetDisposition("attachment")
			message.AddAttachment(attachment)
		}

		response, err := s.client.Send(message)
		if err != nil {
			return fmt.Errorf("failed to send email via SendGrid: %w", err)
		}
		if response.StatusCode >= 400 {
			return fmt.Errorf("SendGrid API error: status %d, body: %s", response.StatusCode, response.Body)
		}
	}

	return nil
}

// buildReportEmailHTML builds the HTML body summarizing the run
func (s *EmailService) buildReportEmailHTML(result *models.GenerateReportResult) string {
	var html bytes.Buffer

	html.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #0066cc; color: white; padding: 20px; border-radius: 8px 8px 0 0; }
        .content { background-color: #f8f9fa; padding: 20px; border-radius: 0 0 8px 8px; }
        .footer { text-align: center; color: #666; font-size: 12px; margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; }
    </style>
</head>
<body>
    <div class="header">
        <h1 style="margin: 0;">Suivi des actions</h1>
        <p style="margin: 5px 0 0 0; opacity: 0.9;">` + result.GeneratedAt + `</p>
    </div>
    <div class="content">
        <p>Bonjour,</p>
        <p>Le suivi hebdomadaire des actions est disponible en pièce jointe.</p>
        <ul>`)

	for _, section := range result.Sections {
		if section.OnLeave {
			html.WriteString("\n            <li><strong>" + section.Name + "</strong> : en congé</li>")
			continue
		}
		html.WriteString(fmt.Sprintf("\n            <li><strong>%s</strong> : %d action(s)</li>", section.Name, section.ActionCount))
	}

	html.WriteString(`
        </ul>
    </div>
    <div class="footer">
        <p>Message automatique, merci de ne pas répondre.</p>
        <p>Généré le ` + result.GeneratedAt + `</p>
    </div>
</body>
</html>`)

	return html.String()
}

// buildReportEmailText builds the plain text body summarizing the run
func (s *EmailService) buildReportEmailText(result *models.GenerateReportResult) string {
	var text bytes.Buffer

	text.WriteString(fmt.Sprintf(`Suivi des actions – %s

Bonjour,

Le suivi hebdomadaire des actions est disponible en pièce jointe.

`, result.GeneratedAt))

	for _, section := range result.Sections {
		if section.OnLeave {
			text.WriteString(fmt.Sprintf("- %s : en congé\n", section.Name))
			continue
		}
		text.WriteString(fmt.Sprintf("- %s : %d action(s)\n", section.Name, section.ActionCount))
	}

	text.WriteString(`
---
Message automatique, merci de ne pas répondre.
Généré le ` + result.GeneratedAt)

	return text.String()
}
