package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockCloudWatch struct {
	mock.Mock
}

func (m *mockCloudWatch) PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	args := m.Called(ctx, params)
	return &cloudwatch.PutMetricDataOutput{}, args.Error(0)
}

func TestMetrics_RecordJobExecution(t *testing.T) {
	t.Run("Should publish duration and count", func(t *testing.T) {
		client := new(mockCloudWatch)
		client.On("PutMetricData", mock.Anything, mock.MatchedBy(func(in *cloudwatch.PutMetricDataInput) bool {
			return aws.ToString(in.Namespace) == "CloudDictionary" &&
				len(in.MetricData) == 2 &&
				aws.ToString(in.MetricData[0].MetricName) == "JobDuration"
		})).Return(nil)

		metrics := NewMetrics("CloudDictionary", client, zap.NewNop())
		metrics.RecordJobExecution(context.Background(), "rotate-definition", 120*time.Millisecond, nil)

		client.AssertExpectations(t)
	})

	t.Run("Should swallow delivery failures", func(t *testing.T) {
		client := new(mockCloudWatch)
		client.On("PutMetricData", mock.Anything, mock.Anything).Return(errors.New("throttled"))

		metrics := NewMetrics("CloudDictionary", client, zap.NewNop())

		assert.NotPanics(t, func() {
			metrics.RecordDefinitionChange(context.Background(), "created")
		})
	})

	t.Run("Should do nothing without a client", func(t *testing.T) {
		metrics := NewMetrics("CloudDictionary", nil, zap.NewNop())
		assert.NotPanics(t, func() {
			metrics.RecordJobExecution(context.Background(), "rotate-definition", time.Second, errors.New("x"))
		})
	})
}

func TestCollector(t *testing.T) {
	c := NewCollector("dictionary")
	other := NewCollector("dictionary")

	c.RecordHTTPRequest(http.MethodGet, "/api/GetAllDefinitions", "200", 5*time.Millisecond)
	c.RecordDefinitionChange(context.Background(), "created")
	c.RecordDefinitionChange(context.Background(), "created")
	Fanout{c, other}.RecordJobExecution(context.Background(), "rotate-definition", time.Second, nil)

	assert.Equal(t, float64(1), testutil.ToFloat64(c.HTTPRequests.WithLabelValues(http.MethodGet, "/api/GetAllDefinitions", "200")))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.DefinitionChanges.WithLabelValues("created")))
	assert.Equal(t, float64(1), testutil.ToFloat64(other.JobRuns.WithLabelValues("rotate-definition", "success")))

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dictionary_definition_changes_total")
}

func TestTracer_Disabled(t *testing.T) {
	tracer := NewTracer("clouddictionary", false)
	called := false

	err := tracer.TraceFunction(context.Background(), "dynamodb.Scan", func(ctx context.Context) error {
		called = true
		return errors.New("scan failed")
	})

	assert.True(t, called)
	assert.EqualError(t, err, "scan failed")
	assert.False(t, tracer.Enabled())
}
