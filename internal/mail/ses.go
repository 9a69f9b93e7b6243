package mail

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/aws/smithy-go"

	customerrors "github.com/axellelanca/catalog/internal/errors"
)

const charset = "UTF-8"

type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESSender sends mail through Amazon SES with static credentials.
type SESSender struct {
	from            string
	region          string
	accessKeyID     string
	secretAccessKey string
	newClient       func(region, accessKeyID, secretAccessKey string) sesAPI
}

func NewSESSender(from, region, accessKeyID, secretAccessKey string) *SESSender {
	return &SESSender{
		from:            from,
		region:          region,
		accessKeyID:     accessKeyID,
		secretAccessKey: secretAccessKey,
		newClient:       newSESClient,
	}
}

func newSESClient(region, accessKeyID, secretAccessKey string) sesAPI {
	return sesv2.New(sesv2.Options{
		Region:      region,
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")),
	})
}

// Send fails with customerrors.ErrMissingMailCredentials before any client is
// built when credentials are not configured. Provider failures are returned
// as customerrors.MailSendError.
func (s *SESSender) Send(ctx context.Context, subject, body string, recipients []string) error {
	if s.accessKeyID == "" || s.secretAccessKey == "" {
		return customerrors.ErrMissingMailCredentials
	}

	client := s.newClient(s.region, s.accessKeyID, s.secretAccessKey)
	_, err := client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination:      &types.Destination{ToAddresses: recipients},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject), Charset: aws.String(charset)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body), Charset: aws.String(charset)},
				},
			},
		},
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return customerrors.MailSendError{Reason: apiErr.ErrorMessage()}
		}
		return customerrors.MailSendError{Reason: err.Error()}
	}
	return nil
}
