package services

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/soltixdb/soltix-resample/internal/logging"
	"github.com/soltixdb/soltix-resample/internal/models"
	"golang.org/x/sync/errgroup"
)

// CodeBatchTooLarge is returned when a batch names more series than allowed
const CodeBatchTooLarge = "BATCH_TOO_LARGE"

// ExecuteBatch resamples every series of the batch on at most
// cfg.BatchWorkers goroutines. A failing series does not affect the others;
// its error is reported in its own slot of the response.
func (s *ResampleService) ExecuteBatch(ctx context.Context, req *models.BatchResampleRequest) (*models.BatchResampleResponse, error) {
	if len(req.Series) > s.cfg.MaxBatchSize {
		return nil, NewServiceErrorWithDetails(CodeBatchTooLarge,
			fmt.Sprintf("batch has %d series, limit is %d", len(req.Series), s.cfg.MaxBatchSize),
			map[string]interface{}{"max_batch_size": s.cfg.MaxBatchSize, "series": len(req.Series)},
		)
	}

	workers := s.cfg.BatchWorkers
	if workers <= 0 {
		workers = 1
	}

	startTime := time.Now()
	results := make([]models.BatchResult, len(req.Series))

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range req.Series {
		i := i
		g.Go(func() error {
			results[i] = s.executeOne(ctx, &req.Series[i])
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Error != nil {
			failed++
		}
	}

	logging.InfoCtx(logging.WithDefaultLogger(ctx, s.logger), "Batch resample completed",
		"series", len(req.Series),
		"failed", failed,
		"workers", workers,
		"execution_time_ms", time.Since(startTime).Milliseconds(),
	)

	return &models.BatchResampleResponse{
		Results:   results,
		Failed:    failed,
		RequestID: logging.RequestID(ctx),
	}, nil
}

// executeOne validates and resamples a single series of a batch
func (s *ResampleService) executeOne(ctx context.Context, req *models.ResampleRequest) models.BatchResult {
	if err := req.Validate(); err != nil {
		detail := &models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()}
		if fiberErr, ok := err.(*fiber.Error); ok {
			detail.Message = fiberErr.Message
		}
		return models.BatchResult{Error: detail}
	}

	resp, err := s.Execute(ctx, req)
	if err != nil {
		detail := &models.ErrorDetail{Code: "RESAMPLE_FAILED", Message: err.Error()}
		if svcErr, ok := err.(*ServiceError); ok {
			detail.Code = svcErr.Code
			detail.Details = svcErr.Details
		}
		return models.BatchResult{Error: detail}
	}

	// The batch response carries the request ID once
	resp.RequestID = ""
	return models.BatchResult{Result: resp}
}
