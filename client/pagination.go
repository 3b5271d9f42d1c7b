package client

import (
	"context"
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"
)

// DefaultPageSize is the page size used by the ListAll helpers unless
// overridden with WithPageSize.
const DefaultPageSize = 100

// ListOptions are the pagination bounds accepted by every list operation.
// Limit bounds the result count; Offset skips leading results. A Limit of
// zero yields an empty result set with the server's total count.
type ListOptions struct {
	Limit  uint32
	Offset uint32
}

// collectAll aggregates every page of a list operation into one slice,
// advancing by pageSize until the server's total count is reached. An empty
// page also terminates, so a moving total cannot loop the aggregation
// forever.
func collectAll[T any](ctx context.Context, pageSize uint32, fetch func(ctx context.Context, limit, offset uint32) ([]T, uint32, error)) ([]T, error) {
	var (
		out    []T
		offset uint32
	)
	for {
		items, total, err := fetch(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
		if len(items) == 0 || uint32(len(out)) >= total {
			return out, nil
		}
		offset += pageSize
	}
}

// tsToTime converts an optional proto timestamp, mapping absent to the zero
// time instead of the epoch.
func tsToTime(ts *timestamppb.Timestamp) time.Time {
	if ts == nil {
		return time.Time{}
	}
	return ts.AsTime()
}
