package proxy

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/your-org/catalog/internal/domain"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if params.Body != nil {
		data, _ := io.ReadAll(params.Body)
		f.body = string(data)
	}
	return &s3.PutObjectOutput{}, f.err
}

type fakeSNS struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNS) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("m-1")}, nil
}

func TestS3Storage_SaveFile(t *testing.T) {
	client := &fakeS3{}
	storage := newS3Storage(client, "catalog-files", "us-east-1", zaptest.NewLogger(t))

	objectURL, err := storage.SaveFile(context.Background(), domain.File{
		Name:        "upload-123456789.txt",
		ContentType: "text/plain",
		Body:        strings.NewReader("valid_payload"),
	})
	require.NoError(t, err)

	assert.Equal(t, "https://catalog-files.s3.us-east-1.amazonaws.com/upload-123456789.txt", objectURL)
	assert.Equal(t, "catalog-files", aws.ToString(client.input.Bucket))
	assert.Equal(t, "upload-123456789.txt", aws.ToString(client.input.Key))
	assert.Equal(t, types.ObjectCannedACLPublicRead, client.input.ACL)
	assert.Equal(t, "text/plain", aws.ToString(client.input.ContentType))
	assert.Equal(t, "valid_payload", client.body)
}

func TestS3Storage_SaveFileErrors(t *testing.T) {
	storage := newS3Storage(&fakeS3{err: errors.New("denied")}, "b", "r", zaptest.NewLogger(t))

	_, err := storage.SaveFile(context.Background(), domain.File{Name: "a.txt", Body: strings.NewReader("x")})
	assert.ErrorContains(t, err, "denied")

	_, err = storage.SaveFile(context.Background(), domain.File{})
	assert.Error(t, err)
}

func TestS3Storage_SaveLocalFile(t *testing.T) {
	client := &fakeS3{}
	storage := newS3Storage(client, "catalog-files", "eu-west-1", zaptest.NewLogger(t))

	path := filepath.Join(t.TempDir(), "upload.txt")
	require.NoError(t, os.WriteFile(path, []byte("valid_payload"), 0o600))

	objectURL, err := storage.SaveLocalFile(context.Background(), path, "text/plain")
	require.NoError(t, err)
	assert.Contains(t, objectURL, "/upload.txt")
	assert.Equal(t, "valid_payload", client.body)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSNSProxy_Send(t *testing.T) {
	client := &fakeSNS{}
	proxy := &SNSProxy{client: client, topicARN: "arn:aws:sns:us-east-1:123:catalog", logger: zaptest.NewLogger(t)}

	require.NoError(t, proxy.Send(context.Background(), "category created"))
	assert.Equal(t, "arn:aws:sns:us-east-1:123:catalog", aws.ToString(client.input.TopicArn))
	assert.Equal(t, "category created", aws.ToString(client.input.Message))

	assert.Error(t, proxy.Send(context.Background(), ""))

	client.err = errors.New("throttled")
	assert.ErrorContains(t, proxy.Send(context.Background(), "x"), "throttled")
}
