package connectors

import (
	"context"

	"github.com/aiod/metacat/pkg/domain"
)

type item struct {
	dataset domain.Dataset
	err     error
}

// Cursor is a lazy sequence of dataset descriptors.
//
// Connectors produce into it from a goroutine; consumers drain it with
// Next. Abandoning a cursor is safe once the context passed to the
// producing FetchAll is cancelled.
type Cursor struct {
	ch <-chan item
}

// Produce starts producer in a goroutine and returns a Cursor over its
// yields. producer calls yield once per descriptor; yield returns false
// when the consumer has seen enough (limit reached or context cancelled),
// and producer should return promptly then.
//
// limit <= 0 means unlimited. An error returned by producer ends the
// sequence; Next reports it after the descriptors yielded so far.
func Produce(
	ctx context.Context,
	limit int,
	producer func(yield func(domain.Dataset) bool) error,
) *Cursor {
	ch := make(chan item)

	go func() {
		defer close(ch)

		sent := 0
		yield := func(dataset domain.Dataset) bool {
			if limit > 0 && limit <= sent {
				return false
			}
			select {
			case ch <- item{dataset: dataset}:
				sent += 1
			case <-ctx.Done():
				return false
			}
			return !(limit > 0 && limit <= sent)
		}

		if err := producer(yield); err != nil {
			select {
			case ch <- item{err: err}:
			case <-ctx.Done():
			}
		}
	}()

	return &Cursor{ch: ch}
}

// Next yields the next descriptor.
//
// # Returns
//
// - domain.Dataset: the next descriptor, when ok.
//
// - bool: false when the sequence has ended, by exhaustion or error.
//
// - error: the producer's error, reported once, together with ok = false.
func (c *Cursor) Next(ctx context.Context) (domain.Dataset, bool, error) {
	select {
	case it, ok := <-c.ch:
		if !ok {
			return domain.Dataset{}, false, nil
		}
		if it.err != nil {
			return domain.Dataset{}, false, it.err
		}
		return it.dataset, true, nil
	case <-ctx.Done():
		return domain.Dataset{}, false, ctx.Err()
	}
}

// Slice drains the cursor into a slice.
func (c *Cursor) Slice(ctx context.Context) ([]domain.Dataset, error) {
	datasets := []domain.Dataset{}
	for {
		dataset, ok, err := c.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return datasets, nil
		}
		datasets = append(datasets, dataset)
	}
}
