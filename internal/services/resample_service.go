package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/soltixdb/soltix-resample/internal/aggregation"
	"github.com/soltixdb/soltix-resample/internal/config"
	"github.com/soltixdb/soltix-resample/internal/logging"
	"github.com/soltixdb/soltix-resample/internal/models"
	"github.com/soltixdb/soltix-resample/internal/resample"
	"github.com/soltixdb/soltix-resample/internal/series"
)

// maxExactInteger is the largest magnitude a float64 holds without losing integer precision
const maxExactInteger = 1 << 53

// ResampleService handles resample business logic
type ResampleService struct {
	logger *logging.Logger
	cfg    config.ResampleConfig
}

// NewResampleService creates a new ResampleService
func NewResampleService(logger *logging.Logger, cfg config.ResampleConfig) *ResampleService {
	return &ResampleService{
		logger: logger,
		cfg:    cfg,
	}
}

// BuildTransform converts a validated transform request into a TimeTransform
func BuildTransform(t models.TransformRequest) (resample.TimeTransform, error) {
	switch t.Type {
	case models.TransformIdentity:
		return resample.Identity(), nil
	case models.TransformDivide:
		return resample.Divide(t.Divisor), nil
	case models.TransformRatio:
		return resample.Ratio(t.Ratio), nil
	default:
		return nil, fmt.Errorf("unknown transform type: %q", t.Type)
	}
}

// Execute resamples the points of a validated request.
// Duplicate timestamps in the request are summed before resampling.
func (s *ResampleService) Execute(ctx context.Context, req *models.ResampleRequest) (*models.ResampleResponse, error) {
	if len(req.Points) > s.cfg.MaxPoints {
		return nil, NewServiceErrorWithDetails(CodeTooManyPoints,
			fmt.Sprintf("request has %d points, limit is %d", len(req.Points), s.cfg.MaxPoints),
			map[string]interface{}{"max_points": s.cfg.MaxPoints, "points": len(req.Points)},
		)
	}

	name := req.Aggregator
	if name == "" {
		name = s.cfg.DefaultAggregator
	}

	src := series.New[float64]()
	for _, p := range req.Points {
		series.Add(src, p.Time, p.Value)
	}

	out, stats, err := s.Run(ctx, src, req.Transform, aggregation.Name(name))
	if err != nil {
		return nil, err
	}

	points := make([]models.Point, 0, out.Len())
	for _, ts := range out.Timestamps() {
		v, _ := out.Get(ts)
		points = append(points, models.Point{Time: ts, Value: v})
	}

	return &models.ResampleResponse{
		Aggregator: name,
		Count:      len(points),
		Points:     points,
		Stats: models.ResampleStats{
			Samples:    stats.Samples,
			Slots:      stats.Slots,
			Remainders: stats.Remainders,
		},
		RequestID: logging.RequestID(ctx),
	}, nil
}

// Run resamples src with the named aggregator and returns a new series.
// Integer aggregators require every value to be integral.
func (s *ResampleService) Run(ctx context.Context, src *series.Series[float64], transform models.TransformRequest, name aggregation.Name) (*series.Series[float64], resample.Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, resample.Stats{}, NewServiceError(CodeCanceled, err.Error())
	}

	tt, err := BuildTransform(transform)
	if err != nil {
		return nil, resample.Stats{}, err
	}

	startTime := time.Now()

	var (
		out   *series.Series[float64]
		stats resample.Stats
	)
	if name.IsInteger() {
		out, stats, err = runInteger(src, tt)
	} else {
		var aggregate resample.Aggregator[float64]
		aggregate, err = aggregation.Lookup(name, transform.SlotRatio())
		if err != nil {
			return nil, resample.Stats{}, NewServiceError(CodeInvalidAggregator, err.Error())
		}
		out = series.New[float64]()
		stats = resample.DownInto(src, out, tt, aggregate)
	}
	if err != nil {
		return nil, resample.Stats{}, err
	}

	logging.InfoCtx(logging.WithDefaultLogger(ctx, s.logger), "Resample completed",
		"aggregator", string(name),
		"transform", transform.Type,
		"samples", stats.Samples,
		"slots", stats.Slots,
		"remainders", stats.Remainders,
		"execution_time_ms", time.Since(startTime).Milliseconds(),
	)

	return out, stats, nil
}

// runInteger resamples src as an int64 series with compensated integer rounding
func runInteger(src *series.Series[float64], tt resample.TimeTransform) (*series.Series[float64], resample.Stats, error) {
	ints := series.New[int64]()
	for _, ts := range src.Timestamps() {
		v, _ := src.Get(ts)
		if v != math.Trunc(v) || math.Abs(v) > maxExactInteger {
			return nil, resample.Stats{}, NewServiceErrorWithDetails(CodeNonIntegerValue,
				fmt.Sprintf("aggregator %q requires integral values", aggregation.NameIntegerSum),
				map[string]interface{}{"timestamp": ts, "value": v},
			)
		}
		ints.Set(ts, int64(v))
	}

	resampled := series.New[int64]()
	stats := resample.DownInto(ints, resampled, tt, aggregation.IntegerSum)

	out := series.New[float64]()
	for _, ts := range resampled.Timestamps() {
		v, _ := resampled.Get(ts)
		out.Set(ts, float64(v))
	}
	return out, stats, nil
}
