package translate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/trilex/internal/dictionary"
)

// Progress is called after each row finishes, successfully or not.
type Progress func(done, total int)

// BulkOptions configures Bulk.
type BulkOptions struct {
	// Concurrency bounds parallel requests. Values below 1 mean 1.
	Concurrency int
	// Progress, if set, is called from worker goroutines.
	Progress Progress
}

// RowError reports a row that failed to translate.
type RowError struct {
	Index  int
	Korean string
	Err    error
}

// Error implements the error interface.
func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (%s): %v", e.Index+1, e.Korean, e.Err)
}

// Unwrap returns the underlying error.
func (e *RowError) Unwrap() error {
	return e.Err
}

// Bulk translates every unverified row of seq that has Korean text. Row
// order is preserved and verified rows are never touched. Rows that fail
// keep their previous values; their errors are joined into the returned
// error. A cancelled context stops rows that have not started yet.
func Bulk(ctx context.Context, t *Translator, seq dictionary.Sequence, opts BulkOptions) (dictionary.Sequence, error) {
	todo := seq.Unverified()
	if len(todo) == 0 {
		return seq, nil
	}

	results := make([]Result, len(todo))
	ok := make([]bool, len(todo))
	var (
		mu   sync.Mutex
		errs []error
		done atomic.Int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Concurrency, 1))
	for n, i := range todo {
		row := seq[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := t.Translate(gctx, Request{Korean: row.Korean, Description: row.Description})
			if opts.Progress != nil {
				opts.Progress(int(done.Add(1)), len(todo))
			}
			if err != nil {
				mu.Lock()
				errs = append(errs, &RowError{Index: i, Korean: row.Korean, Err: err})
				mu.Unlock()
				return nil
			}
			results[n] = res
			ok[n] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		errs = append(errs, err)
	}

	out := seq
	for n, i := range todo {
		if !ok[n] {
			continue
		}
		var err error
		out, err = out.Translated(i, results[n].Key, results[n].English, results[n].Arabic)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return out, errors.Join(errs...)
}
