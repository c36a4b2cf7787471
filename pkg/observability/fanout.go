package observability

import (
	"context"
	"time"
)

// Recorder is implemented by every metrics sink in this package.
type Recorder interface {
	RecordJobExecution(ctx context.Context, job string, duration time.Duration, err error)
	RecordDefinitionChange(ctx context.Context, change string)
}

// Fanout forwards each measurement to every recorder it holds.
type Fanout []Recorder

func (f Fanout) RecordJobExecution(ctx context.Context, job string, duration time.Duration, err error) {
	for _, r := range f {
		r.RecordJobExecution(ctx, job, duration, err)
	}
}

func (f Fanout) RecordDefinitionChange(ctx context.Context, change string) {
	for _, r := range f {
		r.RecordDefinitionChange(ctx, change)
	}
}
