package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fleetledger/internal/monthly"
)

type fakeRunner struct {
	mu     sync.Mutex
	months []string
	ctxs   []context.Context
}

func (f *fakeRunner) Run(ctx context.Context, month string) monthly.Result {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.months = append(f.months, month)
	f.ctxs = append(f.ctxs, ctx)

	return monthly.Result{Month: "2024-05", Reason: "EMAIL_TO not set"}
}

func TestNew_InvalidSchedule(t *testing.T) {
	_, err := New(&fakeRunner{}, Config{Schedule: "every month"})
	assert.Error(t, err)
}

func TestScheduler_StartStop(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	s, err := New(&fakeRunner{}, Config{Location: loc})
	require.NoError(t, err)

	assert.True(t, s.Next().IsZero(), "nothing is scheduled before Start")

	s.Start()
	s.Start()

	next := s.Next().In(loc)
	assert.Equal(t, 1, next.Day())
	assert.Equal(t, 0, next.Hour())
	assert.Equal(t, 5, next.Minute())
	assert.True(t, next.After(time.Now()))

	require.NoError(t, s.Stop(context.Background()))
	require.NoError(t, s.Stop(context.Background()))

	assert.True(t, s.Next().IsZero())
}

func TestScheduler_Run(t *testing.T) {
	runner := &fakeRunner{}

	s, err := New(runner, Config{JobTimeout: time.Minute})
	require.NoError(t, err)

	before := time.Now()
	s.run()

	require.Equal(t, []string{""}, runner.months, "scheduled runs cover the previous month")

	deadline, ok := runner.ctxs[0].Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, before.Add(time.Minute), deadline, 5*time.Second)
	assert.ErrorIs(t, runner.ctxs[0].Err(), context.Canceled, "run context is released afterwards")
}
