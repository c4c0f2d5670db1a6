package worker

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/gofhir/codes"
	"github.com/gofhir/codes/pkg/element"
)

// JobResult is the outcome of decoding one wire string.
type JobResult struct {
	// Index is the position of the wire string in the batch.
	Index int

	// Wire is the decoded wire string.
	Wire string

	// Code is the decoded element, nil on error.
	Code element.Primitive

	// Error is the rejection returned by the binder.
	Error error

	// Duration is the time taken to decode (in nanoseconds).
	Duration int64
}

// BatchResult aggregates results from a batch.
type BatchResult struct {
	// Results holds one entry per completed job, in input order. Entries
	// for jobs skipped after cancellation are nil.
	Results []*JobResult

	// TotalJobs is the number of wire strings submitted.
	TotalJobs int

	// CompletedJobs is the number of jobs completed (including errors).
	CompletedJobs int

	// FailedJobs is the number of jobs that returned an error.
	FailedJobs int

	// TotalDuration is the summed decode time (in nanoseconds).
	TotalDuration int64
}

// HasErrors returns true if any wire string was rejected.
func (br *BatchResult) HasErrors() bool {
	return br.FailedJobs > 0
}

// BatchDecoder decodes wire strings with a codes.Binder.
type BatchDecoder struct {
	binder  codes.Binder
	workers int
	lenient bool
	opts    []codes.Option
}

// NewBatchDecoder creates a batch decoder. If workers <= 0, it defaults
// to runtime.NumCPU().
func NewBatchDecoder(binder codes.Binder, workers int) *BatchDecoder {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &BatchDecoder{
		binder:  binder,
		workers: workers,
	}
}

// Lenient makes the decoder keep well-formed codes outside the vocabulary.
func (bd *BatchDecoder) Lenient(lenient bool) *BatchDecoder {
	bd.lenient = lenient
	return bd
}

// Options sets the build options passed to the binder for every value.
// A *codes.Table then builds a fresh code for members too, instead of
// returning its shared one.
func (bd *BatchDecoder) Options(opts ...codes.Option) *BatchDecoder {
	bd.opts = opts
	return bd
}

// DecodeBatch decodes every wire string. It stops handing out work when
// ctx is cancelled.
func (bd *BatchDecoder) DecodeBatch(ctx context.Context, wires []string) *BatchResult {
	if len(wires) == 0 {
		return &BatchResult{Results: make([]*JobResult, 0)}
	}

	// For small batches, don't use parallelism
	if len(wires) <= 2 || bd.workers == 1 {
		return bd.decodeSequential(ctx, wires)
	}
	return bd.decodeParallel(ctx, wires)
}

func (bd *BatchDecoder) decode(i int, wire string) *JobResult {
	start := time.Now()
	code, err := bd.binder.Decode(wire, bd.lenient, bd.opts...)
	return &JobResult{
		Index:    i,
		Wire:     wire,
		Code:     code,
		Error:    err,
		Duration: time.Since(start).Nanoseconds(),
	}
}

func (bd *BatchDecoder) decodeSequential(ctx context.Context, wires []string) *BatchResult {
	br := &BatchResult{
		Results:   make([]*JobResult, len(wires)),
		TotalJobs: len(wires),
	}

	for i, wire := range wires {
		select {
		case <-ctx.Done():
			return br
		default:
		}
		br.add(bd.decode(i, wire))
	}
	return br
}

func (bd *BatchDecoder) decodeParallel(ctx context.Context, wires []string) *BatchResult {
	numWorkers := bd.workers
	if numWorkers > len(wires) {
		numWorkers = len(wires)
	}

	jobs := make(chan int, len(wires))
	resultsChan := make(chan *JobResult, len(wires))

	// Start workers
	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				resultsChan <- bd.decode(idx, wires[idx])
			}
		}()
	}

	// Submit jobs
	go func() {
		defer close(jobs)
		for i := range wires {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()

	// Wait for workers and close results channel
	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	br := &BatchResult{
		Results:   make([]*JobResult, len(wires)),
		TotalJobs: len(wires),
	}
	for r := range resultsChan {
		br.add(r)
	}
	return br
}

func (br *BatchResult) add(r *JobResult) {
	br.Results[r.Index] = r
	br.CompletedJobs++
	br.TotalDuration += r.Duration
	if r.Error != nil {
		br.FailedJobs++
	}
}
