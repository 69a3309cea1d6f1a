// Package notification sends transactional email to users. Delivery is
// best effort, callers fire and forget.
package notification

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Sender delivers a single email message.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SESSender delivers email through AWS Simple Email Service.
type SESSender struct {
	client *ses.Client
	from   string
	log    *zap.Logger
}

// NewSESSender builds a Sender backed by SES. Region and sender address come
// from AWS_REGION and EMAIL_FROM.
func NewSESSender(ctx context.Context, log *zap.Logger) (*SESSender, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}
	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		return nil, errors.New("EMAIL_FROM is not set")
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}
	return &SESSender{
		client: ses.NewFromConfig(cfg),
		from:   from,
		log:    log,
	}, nil
}

// Send delivers one email through SES.
func (s *SESSender) Send(ctx context.Context, to, subject, body string) error {
	_, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
	})
	if err != nil {
		return errors.Wrap(err, "ses send email")
	}
	s.log.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// NoopSender discards every message. Used in tests and when email is not
// configured.
type NoopSender struct{}

// Send does nothing.
func (NoopSender) Send(context.Context, string, string, string) error { return nil }
