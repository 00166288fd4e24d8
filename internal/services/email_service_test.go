package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BradenHooton/folio/internal/models"
	"github.com/BradenHooton/folio/internal/services"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSubmission() models.ContactSubmission {
	return models.ContactSubmission{
		ID:               "sub-1",
		Name:             "Jane <script>",
		Email:            "jane@example.com",
		Message:          "Line one\nLine two",
		PreferredContact: "email",
		Timestamp:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		IPAddress:        "1.2.3.4",
	}
}

func TestSESNotifier_NotifyContact(t *testing.T) {
	var captured *ses.SendEmailInput
	client := &services.MockSESAPI{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			captured = params
			return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
		},
	}
	notifier := services.NewSESNotifierWithClient(client, "noreply@example.com", "owner@example.com", discardLogger())

	err := notifier.NotifyContact(context.Background(), testSubmission())

	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, "noreply@example.com", aws.ToString(captured.Source))
	assert.Equal(t, []string{"owner@example.com"}, captured.Destination.ToAddresses)
	assert.Equal(t, []string{"jane@example.com"}, captured.ReplyToAddresses)
	assert.Equal(t, "New Portfolio Contact Form Submission", aws.ToString(captured.Message.Subject.Data))

	text := aws.ToString(captured.Message.Body.Text.Data)
	assert.Contains(t, text, "Name: Jane <script>")
	assert.Contains(t, text, "Timestamp: 2025-06-01T12:00:00Z")

	html := aws.ToString(captured.Message.Body.Html.Data)
	assert.Contains(t, html, "Jane &lt;script&gt;")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "Line one<br>Line two")
}

func TestSESNotifier_DeliveryError(t *testing.T) {
	client := &services.MockSESAPI{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, errors.New("MessageRejected")
		},
	}
	notifier := services.NewSESNotifierWithClient(client, "noreply@example.com", "owner@example.com", discardLogger())

	err := notifier.NotifyContact(context.Background(), testSubmission())

	assert.ErrorIs(t, err, models.ErrEmailDelivery)
}
