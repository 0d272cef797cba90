package proxy

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"

	"github.com/your-org/catalog/internal/domain"
)

// snsAPI is the part of the SNS client the proxy uses
type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSProxy publishes messages to a single topic
type SNSProxy struct {
	client   snsAPI
	topicARN string
	logger   *zap.Logger
}

var _ domain.Publisher = (*SNSProxy)(nil)

// NewSNSProxy creates a proxy backed by an SNS client built from cfg
func NewSNSProxy(cfg aws.Config, topicARN string, logger *zap.Logger) *SNSProxy {
	return &SNSProxy{client: sns.NewFromConfig(cfg), topicARN: topicARN, logger: logger}
}

// Send publishes message to the configured topic
func (p *SNSProxy) Send(ctx context.Context, message string) error {
	if message == "" {
		return errors.New("message is required")
	}

	out, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(message),
	})
	if err != nil {
		p.logger.Error("failed to publish message", zap.String("topic", p.topicARN), zap.Error(err))
		return fmt.Errorf("failed to publish: %w", err)
	}

	p.logger.Debug("message published",
		zap.String("topic", p.topicARN),
		zap.String("message_id", aws.ToString(out.MessageId)),
	)
	return nil
}
