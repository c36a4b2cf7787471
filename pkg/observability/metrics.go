package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// CloudWatchAPI is the subset of the CloudWatch client used for metrics.
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Metrics publishes application metrics to CloudWatch. A Metrics without a
// client records nothing.
type Metrics struct {
	namespace string
	client    CloudWatchAPI
	logger    *zap.Logger
}

// NewMetrics creates a new metrics instance
func NewMetrics(namespace string, client CloudWatchAPI, logger *zap.Logger) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
	}
}

// RecordJobExecution records the duration and outcome of a scheduled job
func (m *Metrics) RecordJobExecution(ctx context.Context, job string, duration time.Duration, err error) {
	if m.client == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failure"
	}

	dimensions := []types.Dimension{
		{Name: aws.String("Job"), Value: aws.String(job)},
		{Name: aws.String("Status"), Value: aws.String(status)},
	}
	now := time.Now()

	m.put(ctx, []types.MetricDatum{
		{
			MetricName: aws.String("JobDuration"),
			Dimensions: dimensions,
			Value:      aws.Float64(float64(duration.Milliseconds())),
			Unit:       types.StandardUnitMilliseconds,
			Timestamp:  aws.Time(now),
		},
		{
			MetricName: aws.String("JobCount"),
			Dimensions: dimensions,
			Value:      aws.Float64(1),
			Unit:       types.StandardUnitCount,
			Timestamp:  aws.Time(now),
		},
	})
}

// RecordDefinitionChange counts a create, update or delete
func (m *Metrics) RecordDefinitionChange(ctx context.Context, change string) {
	if m.client == nil {
		return
	}

	m.put(ctx, []types.MetricDatum{
		{
			MetricName: aws.String("DefinitionChanges"),
			Dimensions: []types.Dimension{
				{Name: aws.String("Change"), Value: aws.String(change)},
			},
			Value:     aws.Float64(1),
			Unit:      types.StandardUnitCount,
			Timestamp: aws.Time(time.Now()),
		},
	})
}

func (m *Metrics) put(ctx context.Context, data []types.MetricDatum) {
	input := &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: data,
	}

	// Metric delivery never fails the operation being measured.
	if _, err := m.client.PutMetricData(ctx, input); err != nil {
		m.logger.Warn("Failed to send metrics", zap.Error(err), zap.String("namespace", m.namespace))
	}
}
