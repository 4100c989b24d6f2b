package ingest

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/proflens/core"
)

const (
	// DefaultMaxAttempts is the default per-record retry budget for bulk ingestion.
	DefaultMaxAttempts = 3

	// DefaultBaseDelay is the default base delay between retries.
	DefaultBaseDelay = 500 * time.Millisecond
)

// Failure records a profile that could not be ingested after retries.
type Failure struct {
	Id  string
	Err error
}

// BulkResult summarizes a bulk ingestion run.
type BulkResult struct {
	Ingested int
	Failures []Failure
}

// IngestAll ingests profiles concurrently using a worker pool.
//
// Each record is retried with exponential backoff on transient failures;
// records that fail validation are not retried since they can never
// succeed. A failing record never blocks the rest of the batch: the run
// completes and the failures are reported in the result.
func (i *Ingestor) IngestAll(ctx context.Context, profiles []*core.ProfileRecord, opts ...BulkOption) (*BulkResult, error) {
	options := &bulkOptions{
		poolSize:    defaultPoolSize(),
		maxAttempts: DefaultMaxAttempts,
		baseDelay:   DefaultBaseDelay,
	}
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	pool, err := ants.NewPool(options.poolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		result BulkResult
	)

	for _, profile := range profiles {
		profile := profile
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			// Invalid records never become valid; fail them without
			// burning the retry budget.
			if err := core.ValidateProfileRecord(profile); err != nil {
				mu.Lock()
				result.Failures = append(result.Failures, Failure{Id: idOf(profile), Err: err})
				mu.Unlock()
				return
			}

			err := RetryWithBackoff(ctx, func() error {
				return i.Ingest(ctx, profile)
			}, options.maxAttempts, options.baseDelay)
			if err != nil {
				i.logger.Error("error ingesting profile", "id", profile.Id, "err", err)
				mu.Lock()
				result.Failures = append(result.Failures, Failure{Id: profile.Id, Err: err})
				mu.Unlock()
				return
			}

			mu.Lock()
			result.Ingested++
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			result.Failures = append(result.Failures, Failure{Id: idOf(profile), Err: submitErr})
			mu.Unlock()
		}
	}

	wg.Wait()
	return &result, nil
}

// BulkOption configures a bulk ingestion run.
type BulkOption func(*bulkOptions) error

type bulkOptions struct {
	poolSize    int
	maxAttempts int
	baseDelay   time.Duration
}

// WithPoolSize sets the worker pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) BulkOption {
	return func(o *bulkOptions) error {
		if size < 1 {
			size = 1
		}
		o.poolSize = size
		return nil
	}
}

// WithRetry sets the per-record retry budget and base backoff delay.
func WithRetry(maxAttempts int, baseDelay time.Duration) BulkOption {
	return func(o *bulkOptions) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		o.maxAttempts = maxAttempts
		o.baseDelay = baseDelay
		return nil
	}
}

func defaultPoolSize() int {
	size := runtime.NumCPU() / 2
	if size < 1 {
		size = 1
	}
	return size
}

func idOf(profile *core.ProfileRecord) string {
	if profile == nil {
		return ""
	}
	return profile.Id
}
