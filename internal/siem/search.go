// Package siem implements the asynchronous search-job path used by the
// SIEM platform: queries run as remote jobs that are submitted once and
// polled until done, failed or timed out.
package siem

import (
	"context"
	"fmt"
	"time"

	"github.com/dropDatabas3/falconbridge/internal/observability/logger"
	"github.com/dropDatabas3/falconbridge/internal/platform"
	"go.uber.org/zap"
)

// Remote operations of the job lifecycle.
const (
	opStartSearch  = "StartSearchV1"
	opSearchStatus = "GetSearchStatusV1"
	opStopSearch   = "StopSearchV1"
)

// Config carries the poller timing, read once at startup. Changing the
// values requires a restart.
type Config struct {
	// PollInterval is the fixed suspension between status checks.
	PollInterval time.Duration
	// Timeout is the total time budget for one search job.
	Timeout time.Duration
}

// SearchRequest describes one asynchronous log search.
type SearchRequest struct {
	Repository string `json:"repository"`
	Query      string `json:"query"`
	// StartTime is required, ISO-8601 (a trailing Z is accepted).
	StartTime string `json:"start_time"`
	// EndTime is optional; when absent the remote defaults to "now".
	EndTime string `json:"end_time,omitempty"`
}

// searchJob is the stack-scoped state of one in-flight job. Nothing is
// persisted past the call; abandoned jobs are left to the remote
// platform's own expiry.
type searchJob struct {
	id             string
	repository     string
	query          string
	startMS        int64
	endMS          *int64
	elapsedSeconds float64
}

// Searcher runs asynchronous search jobs against one SIEM instance. It is
// stateless between calls and safe for concurrent use.
type Searcher struct {
	exec platform.Executor
	cfg  Config
	log  *zap.Logger

	// sleep is the single suspension point of the poll loop. It is a
	// plain wait, not cancellable mid-sleep.
	sleep func(time.Duration)
}

// NewSearcher builds a poller with the given timing. A zero timeout is
// honored as-is (the first budget check times out); defaults live in the
// config layer.
func NewSearcher(exec platform.Executor, cfg Config) *Searcher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.Timeout < 0 {
		cfg.Timeout = 0
	}
	return &Searcher{
		exec:  exec,
		cfg:   cfg,
		log:   logger.Named("siem"),
		sleep: time.Sleep,
	}
}

// epochMillis converts an ISO-8601 timestamp to integer Unix epoch
// milliseconds. The conversion is exact up to millisecond truncation.
func epochMillis(ts string) (int64, error) {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

// RunSearch submits a search job and polls it to completion. The result
// is a JSON-serializable value: the job's event records on success
// (possibly empty), or an OperationError for submission failures, status
// failures and timeouts. The returned error is non-nil only when the
// transport itself failed.
//
// State machine: SUBMITTING -> POLLING -> DONE | FAILED | TIMED_OUT.
// Status checks within one call are strictly sequential, spaced by the
// configured poll interval; elapsed time is accounted by that fixed
// interval rather than wall-clock drift.
func (s *Searcher) RunSearch(ctx context.Context, req SearchRequest) (any, error) {
	startMS, err := epochMillis(req.StartTime)
	if err != nil {
		return &platform.OperationError{
			Message: fmt.Sprintf("invalid start_time %q: must be ISO-8601", req.StartTime),
		}, nil
	}

	body := platform.Params{
		"repository":   req.Repository,
		"search_query": req.Query,
		"start":        startMS,
	}
	job := searchJob{repository: req.Repository, query: req.Query, startMS: startMS}
	if req.EndTime != "" {
		endMS, err := epochMillis(req.EndTime)
		if err != nil {
			return &platform.OperationError{
				Message: fmt.Sprintf("invalid end_time %q: must be ISO-8601", req.EndTime),
			}, nil
		}
		body["end"] = endMS
		job.endMS = &endMS
	}

	// SUBMITTING
	resp, err := s.exec.Command(ctx, opStartSearch, platform.Request{Body: body})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opStartSearch, err)
	}
	if !platform.IsSuccess(resp) {
		return platform.ClassifyError(resp, opStartSearch, "Failed to start search job"), nil
	}
	id, ok := resp.Body["id"].(string)
	if !ok || id == "" {
		return platform.ClassifyError(resp, opStartSearch, "Search job response carried no job id"), nil
	}
	job.id = id
	s.log.Info("search job submitted",
		logger.JobID(job.id), logger.Repository(job.repository))

	// POLLING
	timeoutSec := s.cfg.Timeout.Seconds()
	for job.elapsedSeconds < timeoutSec {
		s.sleep(s.cfg.PollInterval)
		job.elapsedSeconds += s.cfg.PollInterval.Seconds()

		status, err := s.exec.Command(ctx, opSearchStatus, platform.Request{
			Query: platform.Params{"id": job.id, "repository": job.repository},
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opSearchStatus, err)
		}
		// Fail fast on the first failing status check; the job is left to
		// the remote platform's own expiry.
		if !platform.IsSuccess(status) {
			return platform.ClassifyError(status, opSearchStatus,
				fmt.Sprintf("Status check for search job %s failed", job.id)), nil
		}
		if done, _ := status.Body["done"].(bool); done {
			events, _ := status.Body["events"].([]any)
			if events == nil {
				events = []any{}
			}
			s.log.Info("search job done",
				logger.JobID(job.id), zap.Int("events", len(events)),
				zap.Float64("elapsed_seconds", job.elapsedSeconds))
			return events, nil
		}
	}

	// TIMED_OUT
	s.stopJob(ctx, job.id)
	return &platform.OperationError{
		Operation: opStartSearch,
		Message: fmt.Sprintf("Search job %s timed out after %d seconds",
			job.id, int(timeoutSec)),
	}, nil
}

// stopJob issues a best-effort stop for a timed-out job. It cannot fail
// the caller's result: its own failure is logged and swallowed so cleanup
// never masks the original timeout error.
func (s *Searcher) stopJob(ctx context.Context, id string) {
	resp, err := s.exec.Command(ctx, opStopSearch, platform.Request{
		Query: platform.Params{"id": id},
	})
	switch {
	case err != nil:
		s.log.Warn("stop job failed", logger.JobID(id), logger.Err(err))
	case !platform.IsSuccess(resp):
		s.log.Warn("stop job rejected", logger.JobID(id), logger.Status(resp.StatusCode))
	}
}
