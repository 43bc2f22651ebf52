package install_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/zappi/internal/install"
	"github.com/thoreinstein/zappi/internal/install/mocks"
	"github.com/thoreinstein/zappi/internal/logging"
	"github.com/thoreinstein/zappi/internal/platform"
	"github.com/thoreinstein/zappi/internal/store"
)

func records(names ...string) []store.Record {
	out := make([]store.Record, len(names))
	for i, n := range names {
		out[i] = store.Record{Name: n, Installed: true, Platform: platform.Linux}
	}
	return out
}

// funcBackend adapts a function to install.Backend.
type funcBackend func(ctx context.Context, rec store.Record) install.Outcome

func (funcBackend) Method() string { return "fake" }

func (f funcBackend) Install(ctx context.Context, rec store.Record) install.Outcome {
	return f(ctx, rec)
}

func TestInstallAll_Empty(t *testing.T) {
	backend := mocks.NewMockBackend(t)
	o := install.NewOrchestrator(backend, install.WithLogger(logging.ForTest(t)))

	for _, in := range [][]store.Record{nil, {}} {
		res := o.InstallAll(t.Context(), in)

		assert.Equal(t, 0, res.Installed)
		assert.Equal(t, 0, res.Failed)
		assert.Equal(t, 0, res.Total)
		assert.Empty(t, res.Results)
		assert.Equal(t, install.NoAppsMessage, res.Message)
	}
	backend.AssertNotCalled(t, "Install", mock.Anything, mock.Anything)
}

func TestInstallAll_OneFailure(t *testing.T) {
	backend := mocks.NewMockBackend(t)
	backend.EXPECT().Method().Return("apt").Maybe()
	backend.EXPECT().Install(mock.Anything, mock.MatchedBy(func(r store.Record) bool { return r.Name != "app2" })).
		RunAndReturn(func(_ context.Context, r store.Record) install.Outcome {
			return install.Outcome{App: r.Name, Success: true, Method: "apt"}
		}).Times(2)
	backend.EXPECT().Install(mock.Anything, mock.MatchedBy(func(r store.Record) bool { return r.Name == "app2" })).
		Return(install.Outcome{App: "app2", Error: "Package not found in repository", Method: "apt"}).Once()

	o := install.NewOrchestrator(backend, install.WithLogger(logging.ForTest(t)))
	res := o.InstallAll(t.Context(), records("app1", "app2", "app3"))

	assert.Equal(t, 2, res.Installed)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 3, res.Total)
	require.Len(t, res.Results, 3)
	assert.Equal(t, "app2", res.Results[1].App)
	assert.False(t, res.Results[1].Success)
	assert.Equal(t, "Package not found in repository", res.Results[1].Error)
	assert.True(t, res.Results[0].Success)
	assert.True(t, res.Results[2].Success)
	assert.Equal(t, "Installation completed: 2 succeeded, 1 failed", res.Message)
	assert.False(t, res.Succeeded())

	_, err := uuid.Parse(res.ID)
	assert.NoError(t, err)
}

func TestInstallAll_RecoversPanics(t *testing.T) {
	backend := funcBackend(func(_ context.Context, r store.Record) install.Outcome {
		if r.Name == "bad" {
			panic("backend exploded")
		}
		return install.Outcome{Success: true}
	})

	res := install.NewOrchestrator(backend).InstallAll(t.Context(), records("good", "bad", "also-good"))

	assert.Equal(t, 2, res.Installed)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, "bad", res.Results[1].App)
	assert.Equal(t, "backend exploded", res.Results[1].Error)
	assert.Equal(t, "fake", res.Results[1].Method)
}

func TestInstallAll_FillsMissingFields(t *testing.T) {
	backend := funcBackend(func(context.Context, store.Record) install.Outcome {
		return install.Outcome{}
	})

	res := install.NewOrchestrator(backend).InstallAll(t.Context(), records("vim"))

	require.Len(t, res.Results, 1)
	out := res.Results[0]
	assert.Equal(t, "vim", out.App)
	assert.Equal(t, "fake", out.Method)
	assert.False(t, out.Success)
	assert.NotEmpty(t, out.Error)
}

func TestInstallAll_ParallelKeepsInputOrder(t *testing.T) {
	var inFlight, peak atomic.Int32
	backend := funcBackend(func(_ context.Context, r store.Record) install.Outcome {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		// later items finish first
		time.Sleep(time.Duration(10-len(r.Name)) * time.Millisecond)
		return install.Outcome{Success: r.Name != "aaaa"}
	})

	names := []string{"a", "aa", "aaa", "aaaa", "aaaaa", "aaaaaa"}
	res := install.NewOrchestrator(backend, install.WithWorkers(3)).InstallAll(t.Context(), records(names...))

	require.Len(t, res.Results, len(names))
	for i, out := range res.Results {
		assert.Equal(t, names[i], out.App)
	}
	assert.Equal(t, 5, res.Installed)
	assert.Equal(t, 1, res.Failed)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestInstallAll_CanceledContext(t *testing.T) {
	backend := mocks.NewMockBackend(t)
	backend.EXPECT().Method().Return("brew")
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	res := install.NewOrchestrator(backend).InstallAll(ctx, records("a", "b"))

	assert.Equal(t, 0, res.Installed)
	assert.Equal(t, 2, res.Failed)
	for _, out := range res.Results {
		assert.Equal(t, context.Canceled.Error(), out.Error)
		assert.Equal(t, "brew", out.Method)
	}
	backend.AssertNotCalled(t, "Install", mock.Anything, mock.Anything)
}

func TestInstallAll_Progress(t *testing.T) {
	var seen []string
	backend := funcBackend(func(_ context.Context, r store.Record) install.Outcome {
		return install.Outcome{Success: true}
	})
	o := install.NewOrchestrator(backend, install.WithProgress(func(out install.Outcome) {
		seen = append(seen, out.App)
	}))

	o.InstallAll(t.Context(), records("x", "y"))

	assert.Equal(t, []string{"x", "y"}, seen)
}

func TestInstallAll_Deterministic(t *testing.T) {
	backend := funcBackend(func(_ context.Context, r store.Record) install.Outcome {
		return install.Outcome{Success: len(r.Name)%2 == 0}
	})
	o := install.NewOrchestrator(backend)
	in := records("ab", "c", "de", "f")

	first := o.InstallAll(t.Context(), in)
	second := o.InstallAll(t.Context(), in)

	assert.Equal(t, first.Installed, second.Installed)
	assert.Equal(t, first.Message, second.Message)
	for i := range first.Results {
		assert.Equal(t, first.Results[i].Success, second.Results[i].Success, fmt.Sprint(i))
	}
}
