/*
 *     Copyright 2026 The Valvesense Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package stream

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/valvesense/valvesense/simulator/metrics"
)

// Buffered decouples the simulator from a slow sink with a bounded queue
// drained by one goroutine. Write must not be called after Close.
type Buffered struct {
	sink   Sink
	frames chan Frame
	group  *errgroup.Group
	ctx    context.Context
	once   sync.Once

	// Frames queued or being written.
	pending *atomic.Int64
}

// NewBuffered starts draining up to size queued frames into sink.
func NewBuffered(ctx context.Context, sink Sink, size int) *Buffered {
	group, ctx := errgroup.WithContext(ctx)
	b := &Buffered{
		sink:    sink,
		frames:  make(chan Frame, size),
		group:   group,
		ctx:     ctx,
		pending: atomic.NewInt64(0),
	}

	group.Go(b.drain)
	return b
}

func (b *Buffered) drain() error {
	for {
		select {
		case frame, ok := <-b.frames:
			if !ok {
				return nil
			}

			err := b.sink.Write(frame)
			metrics.BufferedFrameGauge.Set(float64(b.pending.Dec()))
			if err != nil {
				return fmt.Errorf("write frame %d: %w", frame.Tick, err)
			}
		case <-b.ctx.Done():
			return b.ctx.Err()
		}
	}
}

// Write queues frame, blocking while the queue is full.
func (b *Buffered) Write(frame Frame) error {
	metrics.BufferedFrameGauge.Set(float64(b.pending.Inc()))
	select {
	case b.frames <- frame:
		return nil
	case <-b.ctx.Done():
		metrics.BufferedFrameGauge.Set(float64(b.pending.Dec()))
		return fmt.Errorf("buffered sink stopped: %w", b.ctx.Err())
	}
}

// Pending returns the number of frames queued or being written.
func (b *Buffered) Pending() int64 {
	return b.pending.Load()
}

// Close waits for the queued frames to be written and closes the sink.
func (b *Buffered) Close() error {
	b.once.Do(func() { close(b.frames) })

	var errs *multierror.Error
	if err := b.group.Wait(); err != nil {
		errs = multierror.Append(errs, err)
	}

	if err := b.sink.Close(); err != nil {
		errs = multierror.Append(errs, err)
	}

	return errs.ErrorOrNil()
}
