package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/soltixdb/soltix-resample/internal/config"
	"github.com/soltixdb/soltix-resample/internal/logging"
	"github.com/soltixdb/soltix-resample/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBatchService(maxBatch, workers int) *ResampleService {
	return NewResampleService(logging.NewNop(), config.ResampleConfig{
		DefaultAggregator: "sum",
		MaxPoints:         100,
		MaxBatchSize:      maxBatch,
		BatchWorkers:      workers,
	})
}

func TestExecuteBatch_MixedResults(t *testing.T) {
	svc := newBatchService(10, 2)
	ctx := logging.WithRequestID(context.Background(), "batch-1")

	resp, err := svc.ExecuteBatch(ctx, &models.BatchResampleRequest{
		Series: []models.ResampleRequest{
			{
				Points:    pts(0, 1, 1, 2),
				Transform: models.TransformRequest{Type: models.TransformDivide, Divisor: 2},
			},
			{
				Points:    pts(0, 1),
				Transform: models.TransformRequest{Type: "log"},
			},
			{
				Points:     pts(0, 0.5),
				Transform:  models.TransformRequest{Type: models.TransformIdentity},
				Aggregator: "isum",
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 3)

	assert.Equal(t, 2, resp.Failed)
	assert.Equal(t, "batch-1", resp.RequestID)

	require.NotNil(t, resp.Results[0].Result)
	assert.Nil(t, resp.Results[0].Error)
	assert.Equal(t, pts(0, 3), resp.Results[0].Result.Points)
	assert.Empty(t, resp.Results[0].Result.RequestID)

	require.NotNil(t, resp.Results[1].Error)
	assert.Equal(t, "INVALID_REQUEST", resp.Results[1].Error.Code)

	require.NotNil(t, resp.Results[2].Error)
	assert.Equal(t, CodeNonIntegerValue, resp.Results[2].Error.Code)
}

func TestExecuteBatch_PreservesOrder(t *testing.T) {
	svc := newBatchService(64, 4)

	series := make([]models.ResampleRequest, 50)
	for i := range series {
		series[i] = models.ResampleRequest{
			Points:    pts(0, float64(i), 1, float64(i)),
			Transform: models.TransformRequest{Type: models.TransformDivide, Divisor: 2},
		}
	}

	resp, err := svc.ExecuteBatch(context.Background(), &models.BatchResampleRequest{Series: series})
	require.NoError(t, err)
	assert.Zero(t, resp.Failed)

	for i, r := range resp.Results {
		require.NotNil(t, r.Result, fmt.Sprintf("series %d", i))
		assert.Equal(t, pts(0, float64(2*i)), r.Result.Points)
	}
}

func TestExecuteBatch_TooLarge(t *testing.T) {
	svc := newBatchService(1, 1)

	_, err := svc.ExecuteBatch(context.Background(), &models.BatchResampleRequest{
		Series: make([]models.ResampleRequest, 2),
	})
	svcErr := requireServiceError(t, err, CodeBatchTooLarge)
	assert.Equal(t, 413, svcErr.Status())
}
