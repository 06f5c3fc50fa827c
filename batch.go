package audio8d

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

// BatchResult is the outcome of one batch item. Exactly one of Err and
// (Signal, Encoded) is set.
type BatchResult struct {
	// Index is the item's position in the input slice.
	Index int

	// Signal is the processed signal.
	Signal *Signal

	// Encoded is the WAV encoding of Signal.
	Encoded []byte

	// Err is the item's failure, if any.
	Err error
}

// ProcessBatch processes and encodes every input on a bounded worker pool.
// Results are returned in input order; a failing item never affects the
// others. workers <= 0 uses GOMAXPROCS.
func (e *Engine) ProcessBatch(inputs []*Signal, workers int) []BatchResult {
	results := make([]BatchResult, len(inputs))
	if len(inputs) == 0 {
		return results
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, len(inputs))

	jobs := make(chan int)
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = e.processItem(i, inputs[i])
			}
		}()
	}

	for i := range inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	failed := 0
	for i := range results {
		if results[i].Err != nil {
			failed++
		}
	}
	e.cfg.logger.WithFields(logrus.Fields{
		"items":   len(inputs),
		"failed":  failed,
		"workers": workers,
	}).Debug("Batch complete")

	return results
}

// processItem runs one item, turning a panic into an error so the rest of
// the batch still completes.
func (e *Engine) processItem(index int, in *Signal) (res BatchResult) {
	res.Index = index

	defer func() {
		if r := recover(); r != nil {
			res = BatchResult{Index: index, Err: fmt.Errorf("item %d: panic: %v", index, r)}
		}
	}()

	out, err := e.Process(in)
	if err != nil {
		res.Err = fmt.Errorf("item %d: %w", index, err)
		return res
	}

	encoded, err := Encode(out)
	if err != nil {
		res.Err = fmt.Errorf("item %d: %w", index, err)
		return res
	}

	res.Signal = out
	res.Encoded = encoded
	return res
}

// ProcessBatch processes inputs with a one-off engine. A parameter or option
// error is reported on every item.
func ProcessBatch(inputs []*Signal, params *Parameters, workers int, opts ...Option) []BatchResult {
	e, err := New(params, opts...)
	if err != nil {
		results := make([]BatchResult, len(inputs))
		for i := range results {
			results[i] = BatchResult{Index: i, Err: err}
		}
		return results
	}
	return e.ProcessBatch(inputs, workers)
}
