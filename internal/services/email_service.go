package services

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/BradenHooton/folio/internal/models"
	"github.com/BradenHooton/folio/pkg/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// ContactNotifier delivers a contact submission to the site owner
type ContactNotifier interface {
	NotifyContact(ctx context.Context, submission models.ContactSubmission) error
}

// SESAPI is the subset of the SES client used for notifications
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESNotifier sends contact notifications using AWS SES
type SESNotifier struct {
	client      SESAPI
	fromAddress string
	recipient   string
	logger      *slog.Logger
}

// NewSESNotifier loads the default AWS credential chain for region
func NewSESNotifier(ctx context.Context, region, fromAddress, recipient string, logger *slog.Logger) (*SESNotifier, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewSESNotifierWithClient(ses.NewFromConfig(cfg), fromAddress, recipient, logger), nil
}

// NewSESNotifierWithClient builds a notifier around an existing client
func NewSESNotifierWithClient(client SESAPI, fromAddress, recipient string, logger *slog.Logger) *SESNotifier {
	return &SESNotifier{
		client:      client,
		fromAddress: fromAddress,
		recipient:   recipient,
		logger:      logger,
	}
}

// NotifyContact emails the submission to the configured recipient with
// Reply-To set to the visitor
func (s *SESNotifier) NotifyContact(ctx context.Context, submission models.ContactSubmission) error {
	input := &ses.SendEmailInput{
		Source: aws.String(s.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{s.recipient},
		},
		ReplyToAddresses: []string{submission.Email},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String("New Portfolio Contact Form Submission"),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data:    aws.String(contactHTMLBody(submission)),
					Charset: aws.String("UTF-8"),
				},
				Text: &types.Content{
					Data:    aws.String(contactTextBody(submission)),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		s.logger.Error("failed to send contact notification via SES",
			slog.String("submission_id", submission.ID),
			slog.String("email", logger.MaskEmail(submission.Email)),
			slog.Any("error", err))
		return fmt.Errorf("%w: %v", models.ErrEmailDelivery, err)
	}

	s.logger.Info("contact notification sent",
		slog.String("submission_id", submission.ID),
		slog.String("message_id", aws.ToString(result.MessageId)))

	return nil
}

type contactField struct {
	label string
	value string
}

func contactFields(sub models.ContactSubmission) []contactField {
	return []contactField{
		{"Name", sub.Name},
		{"Email", sub.Email},
		{"Phone", sub.Phone},
		{"Project Type", sub.ProjectType},
		{"Preferred Contact", sub.PreferredContact},
		{"Message", sub.Message},
		{"Timestamp", sub.Timestamp.UTC().Format(time.RFC3339)},
		{"IP", sub.IPAddress},
	}
}

func contactTextBody(sub models.ContactSubmission) string {
	var b strings.Builder
	b.WriteString("New contact form submission:\n\n")
	for _, f := range contactFields(sub) {
		fmt.Fprintf(&b, "%s: %s\n", f.label, f.value)
	}
	return b.String()
}

// contactHTMLBody escapes every visitor-supplied value
func contactHTMLBody(sub models.ContactSubmission) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
<h2>New contact form submission</h2>
<table cellpadding="6">
`)
	for _, f := range contactFields(sub) {
		value := strings.ReplaceAll(html.EscapeString(f.value), "\n", "<br>")
		fmt.Fprintf(&b, "<tr><td><strong>%s</strong></td><td>%s</td></tr>\n", f.label, value)
	}
	b.WriteString("</table>\n</body>\n</html>\n")
	return b.String()
}
