package worker

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/casevalue/internal/model"
)

// maxRequestLine bounds one JSONL request
const maxRequestLine = 1 << 20

// Estimator computes one report
type Estimator interface {
	Estimate(ctx context.Context, req model.EstimateRequest) (*model.Report, error)
}

// EstimateJob values one request
type EstimateJob struct {
	Request   model.EstimateRequest
	Estimator Estimator
}

// Execute executes the estimate job
func (j *EstimateJob) Execute(ctx context.Context) Result {
	report, err := j.Estimator.Estimate(ctx, j.Request)
	return &EstimateResult{
		ID:     j.Request.ID,
		Report: report,
		Error:  err,
	}
}

// EstimateResult represents the result of an estimate job
type EstimateResult struct {
	ID     string
	Report *model.Report
	Error  error
}

// GetError returns the error from the estimate result
func (r *EstimateResult) GetError() error {
	return r.Error
}

// BatchProcessor values many requests concurrently
type BatchProcessor struct {
	estimator   Estimator
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(estimator Estimator, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		estimator:   estimator,
		concurrency: concurrency,
	}
}

// ProcessRequests values every request and returns results in input order
func (b *BatchProcessor) ProcessRequests(ctx context.Context, reqs []model.EstimateRequest) []*EstimateResult {
	if len(reqs) == 0 {
		return []*EstimateResult{}
	}

	pool := NewPoolContext(ctx, b.concurrency)
	pool.Start()

	for _, req := range reqs {
		pool.Submit(&EstimateJob{
			Request:   req,
			Estimator: b.estimator,
		})
	}

	results := pool.Wait()

	out := make([]*EstimateResult, len(results))
	for i, result := range results {
		if result == nil {
			out[i] = &EstimateResult{ID: reqs[i].ID, Error: fmt.Errorf("not run: %w", context.Cause(ctx))}
			continue
		}
		out[i] = result.(*EstimateResult)
	}

	return out
}

// ProcessFile reads JSONL requests from a file and values them
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*EstimateResult, error) {
	reqs, err := ReadRequestsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read requests: %w", err)
	}

	return b.ProcessRequests(ctx, reqs), nil
}

// ReadRequestsFromFile reads one JSON request per line
func ReadRequestsFromFile(filePath string) ([]model.EstimateRequest, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ReadRequests(file)
}

// ReadRequests parses JSONL. Blank lines and lines starting with # are
// skipped. Requests without an id are named after their line number; a
// repeated id is an error.
func ReadRequests(r io.Reader) ([]model.EstimateRequest, error) {
	var reqs []model.EstimateRequest
	seen := make(map[string]int)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestLine)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var req model.EstimateRequest
		dec := json.NewDecoder(bytes.NewReader([]byte(line)))
		dec.UseNumber()
		if err := dec.Decode(&req); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		if req.ID == "" {
			req.ID = fmt.Sprintf("line-%d", lineNo)
		}
		if first, dup := seen[req.ID]; dup {
			return nil, fmt.Errorf("line %d: duplicate id %q (first on line %d)", lineNo, req.ID, first)
		}
		seen[req.ID] = lineNo

		reqs = append(reqs, req)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return reqs, nil
}
