// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmq_test

import (
	"context"
	"testing"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"github.com/outofforest/logger"
	"github.com/outofforest/parallel"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"code.hybscloud.com/shmq"
	"code.hybscloud.com/shmq/pmr"
)

// stressPipeline runs producers and consumers over q as tasks of one
// parallel group. Producers push 1..perProd offset by their index; the
// consumers' partial sums must add up to the sum of everything pushed.
func stressPipeline(t *testing.T, q shmq.FIFO[sealed], producers, consumers, perProd int) {
	t.Helper()
	requireT := require.New(t)

	ctx, cancel := context.WithTimeout(logger.WithLogger(context.Background(), logger.New(logger.DefaultConfig)), time.Minute)
	t.Cleanup(cancel)

	total := producers * perProd
	sums := make([]int, consumers)
	var popped atomix.Int64

	err := parallel.Run(ctx, func(ctx context.Context, spawn parallel.SpawnFn) error {
		for p := range producers {
			spawn("producer", parallel.Continue, func(ctx context.Context) error {
				backoff := iox.Backoff{}
				for i := range perProd {
					v := seal(uint64(p*perProd + i))
					for q.Enqueue(&v) != nil {
						if ctx.Err() != nil {
							return errors.WithStack(ctx.Err())
						}
						backoff.Wait()
					}
					backoff.Reset()
				}
				return nil
			})
		}
		for c := range consumers {
			spawn("consumer", parallel.Continue, func(ctx context.Context) error {
				log := logger.Get(ctx)
				backoff := iox.Backoff{}
				n := 0
				for popped.Load() < int64(total) {
					v, err := q.Dequeue()
					if err != nil {
						if !shmq.IsWouldBlock(err) {
							return err
						}
						if ctx.Err() != nil {
							return errors.WithStack(ctx.Err())
						}
						backoff.Wait()
						continue
					}
					backoff.Reset()
					if !v.intact() {
						return errors.Errorf("torn element %#x", v.Seq)
					}
					sums[c] += int(v.Seq)
					n++
					popped.Add(1)
				}
				log.Debug("consumer finished", zap.Int("consumer", c), zap.Int("popped", n))
				return nil
			})
		}
		return nil
	})
	requireT.NoError(err)

	requireT.EqualValues(total, popped.Load())
	requireT.Equal(lo.Sum(lo.Range(total)), lo.Sum(sums))
	requireT.True(q.Empty())
}

func TestStressModels(t *testing.T) {
	if shmq.RaceEnabled {
		t.Skip("skip: stress test requires concurrent access")
	}

	cases := []struct {
		name       string
		producers  int
		consumers  int
		newQueue   func(mr pmr.MemoryResource) shmq.FIFO[sealed]
		resourceOf func() pmr.MemoryResource
	}{
		{"SPSC/heap", 1, 1, func(mr pmr.MemoryResource) shmq.FIFO[sealed] { return shmq.NewSPSC[sealed](31, mr) }, nil},
		{"MPSC/heap", 6, 1, func(mr pmr.MemoryResource) shmq.FIFO[sealed] { return shmq.NewMPSC[sealed](31, mr) }, nil},
		{"SPMC/arena", 1, 6, func(mr pmr.MemoryResource) shmq.FIFO[sealed] { return shmq.NewSPMC[sealed](31, mr) },
			func() pmr.MemoryResource { return pmr.NewArena(1 << 16) }},
		{"MPMC/arena", 6, 6, func(mr pmr.MemoryResource) shmq.FIFO[sealed] { return shmq.NewMPMC[sealed](31, mr) },
			func() pmr.MemoryResource { return pmr.NewArena(1 << 16) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var mr pmr.MemoryResource
			if c.resourceOf != nil {
				mr = c.resourceOf()
			}
			q := c.newQueue(mr)
			require.NoError(t, q.Err())
			t.Cleanup(func() { require.NoError(t, q.Close()) })

			stressPipeline(t, q, c.producers, c.consumers, 20000)
		})
	}
}
