package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// Mailer sends summary emails via Amazon SES. When no from-address is
// configured the mailer is disabled and sends are skipped, so deployments
// without SES still get the mailto path.
type Mailer struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
	logger    *slog.Logger
}

// NewMailer creates a mailer, or a disabled one when fromEmail is empty.
func NewMailer(ctx context.Context, awsRegion, fromEmail, fromName string, logger *slog.Logger) (*Mailer, error) {
	if fromEmail == "" {
		logger.Info("export mailer disabled: SES_FROM_EMAIL not configured")
		return &Mailer{enabled: false, logger: logger}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	logger.Info("export mailer enabled", "from", fromEmail, "region", awsRegion)
	return &Mailer{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
		logger:    logger,
	}, nil
}

// Enabled reports whether server-side email delivery is configured.
func (m *Mailer) Enabled() bool {
	return m.enabled
}

// Send delivers a plain-text email. Calling a disabled mailer is a no-op
// that reports false.
func (m *Mailer) Send(ctx context.Context, toEmail, subject, textBody string) (bool, error) {
	if !m.enabled {
		return false, nil
	}

	fromAddress := m.fromEmail
	if m.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := m.client.SendEmail(ctx, input)
	if err != nil {
		return false, fmt.Errorf("send email to %s: %w", toEmail, err)
	}

	if result.MessageId != nil {
		m.logger.Info("summary email sent", "to", toEmail, "message_id", *result.MessageId)
	}
	return true, nil
}
