package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/aws/smithy-go"
	"github.com/gpucloudstore/gpucloud-site/pkg/logging"
)

// SESAPI is the subset of the SES v2 client used for delivery.
type SESAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESDispatcher sends envelopes via AWS SES.
type SESDispatcher struct {
	client SESAPI
	logger *logging.Logger
}

// NewSESDispatcher creates a new AWS SES dispatcher.
func NewSESDispatcher(client SESAPI, logger *logging.Logger) *SESDispatcher {
	if client == nil {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SESDispatcher{client: client, logger: logger}
}

// Dispatch sends the envelope via AWS SES.
func (s *SESDispatcher) Dispatch(ctx context.Context, env Envelope) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("notify: SES client not configured")
	}

	fromAddress := env.From
	if env.FromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", env.FromName, env.From)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{env.To},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(env.Subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(env.PlainText),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}
	if env.HTML != "" {
		input.Content.Simple.Body.Html = &types.Content{
			Data:    aws.String(env.HTML),
			Charset: aws.String("UTF-8"),
		}
	}

	output, err := s.client.SendEmail(ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			status := http.StatusBadGateway
			var respErr *awshttp.ResponseError
			if errors.As(err, &respErr) {
				status = respErr.HTTPStatusCode()
			}
			s.logger.Error("SES rejected message", "code", apiErr.ErrorCode(), "status", status, "to", env.To)
			return &ProviderError{Provider: ProviderSES, StatusCode: status, Detail: apiErr.ErrorMessage()}
		}
		s.logger.Error("SES send failed", "error", err, "to", env.To)
		return fmt.Errorf("notify: SES send failed: %w", err)
	}

	s.logger.Info("email sent via SES", "to", env.To, "subject", env.Subject, "message_id", aws.ToString(output.MessageId))
	return nil
}

var _ Dispatcher = (*SESDispatcher)(nil)
