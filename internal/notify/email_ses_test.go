package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/smithy-go"
	"github.com/gpucloudstore/gpucloud-site/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	inputs []*sesv2.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(_ context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestNewSESDispatcher_NilClient(t *testing.T) {
	assert.Nil(t, NewSESDispatcher(nil, nil))
}

func TestSESDispatcher_Success(t *testing.T) {
	client := &fakeSES{}
	d := NewSESDispatcher(client, logging.New("error"))

	env := testEnvelope()
	env.FromName = "GPUcloud"
	require.NoError(t, d.Dispatch(context.Background(), env))

	require.Len(t, client.inputs, 1)
	in := client.inputs[0]
	assert.Equal(t, "GPUcloud <no-reply@gpucloud.store>", aws.ToString(in.FromEmailAddress))
	assert.Equal(t, []string{"sales@gpucloud.store"}, in.Destination.ToAddresses)
	assert.Equal(t, env.Subject, aws.ToString(in.Content.Simple.Subject.Data))
	assert.Equal(t, env.PlainText, aws.ToString(in.Content.Simple.Body.Text.Data))
	assert.Equal(t, env.HTML, aws.ToString(in.Content.Simple.Body.Html.Data))
}

func TestSESDispatcher_APIErrorIsProviderError(t *testing.T) {
	client := &fakeSES{err: &smithy.GenericAPIError{Code: "MessageRejected", Message: "Email address is not verified."}}
	d := NewSESDispatcher(client, logging.New("error"))

	err := d.Dispatch(context.Background(), testEnvelope())
	perr, ok := AsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, "Email address is not verified.", perr.Detail)
	assert.Equal(t, "SES error", perr.Label())
}

func TestSESDispatcher_OtherErrorIsWrapped(t *testing.T) {
	client := &fakeSES{err: errors.New("dial tcp: timeout")}
	d := NewSESDispatcher(client, logging.New("error"))

	err := d.Dispatch(context.Background(), testEnvelope())
	require.Error(t, err)
	_, ok := AsProviderError(err)
	assert.False(t, ok)
}
