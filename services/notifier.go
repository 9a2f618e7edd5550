package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"instabarakat-leads/models"
)

// Notifier is told about every stored lead.
type Notifier interface {
	NotifyNewSubmission(ctx context.Context, sub models.Submission) error
}

// MailSender is satisfied by config.Mailer.
type MailSender interface {
	SendMail(to []string, subject, html string) error
}

type noopNotifier struct{}

func (noopNotifier) NotifyNewSubmission(context.Context, models.Submission) error { return nil }

// MailNotifier e-mails a summary of each new lead to a fixed recipient list.
type MailNotifier struct {
	sender     MailSender
	recipients []string
	product    string
}

func NewMailNotifier(sender MailSender, recipients []string, product string) *MailNotifier {
	return &MailNotifier{sender: sender, recipients: recipients, product: product}
}

var newSubmissionMail = template.Must(template.New("new_submission").Parse(`<p>Новая заявка ({{.Product}})</p>
<table>
<tr><td>Имя</td><td>{{.Sub.Name}}</td></tr>
<tr><td>Контакт</td><td>{{.Sub.Contact}}</td></tr>
<tr><td>Доход</td><td>{{.Sub.Instagram}}</td></tr>
<tr><td>Ожидания</td><td>{{.Sub.Expectations}}</td></tr>
</table>`))

func (n *MailNotifier) NotifyNewSubmission(ctx context.Context, sub models.Submission) error {
	if len(n.recipients) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := newSubmissionMail.Execute(&body, struct {
		Product string
		Sub     models.Submission
	}{n.product, sub}); err != nil {
		return fmt.Errorf("failed to render notification: %w", err)
	}

	subject := fmt.Sprintf("[%s] Новая заявка: %s", n.product, sub.Name)
	if err := n.sender.SendMail(n.recipients, subject, body.String()); err != nil {
		return fmt.Errorf("failed to send notification for %s: %w", sub.ID, err)
	}
	return nil
}
