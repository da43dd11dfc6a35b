package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beesaferoot/condo-console/internal/store"
)

func TestCollector_ObserveOp(t *testing.T) {
	c := New()
	reg := prometheus.NewRegistry()
	require.NoError(t, c.Register(reg))

	c.ObserveOp("apartments", store.OpLoad, nil, 20*time.Millisecond)
	c.ObserveOp("apartments", store.OpLoad, nil, 10*time.Millisecond)
	c.ObserveOp("apartments", store.OpCreate, &store.Error{Kind: store.KindMutation, Op: store.OpCreate, Err: errors.New("boom")}, time.Millisecond)
	c.ObserveOp("apartments", store.OpCreate, &store.Error{Kind: store.KindBusy, Op: store.OpCreate, Err: store.ErrBusy}, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.ops.WithLabelValues("apartments", "load", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ops.WithLabelValues("apartments", "create", "mutation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ops.WithLabelValues("apartments", "create", "busy")))

	// rejected calls never ran, so no duration is recorded for them
	count, err := testutil.GatherAndCount(reg, "condo_console_store_operation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per entity and op")
	assert.Equal(t, 3, testutil.CollectAndCount(c.ops))
}

func TestCollector_Gauges(t *testing.T) {
	c := New()

	c.SetBusy("residents", true)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.busy.WithLabelValues("residents")))
	c.SetBusy("residents", false)
	assert.Equal(t, 0.0, testutil.ToFloat64(c.busy.WithLabelValues("residents")))

	c.SetSize("residents", 12)
	assert.Equal(t, 12.0, testutil.ToFloat64(c.size.WithLabelValues("residents")))
}

func TestCollector_RegisterTwiceFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, New().Register(reg))
	assert.Error(t, New().Register(reg))
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "error", Outcome(errors.New("plain")))
	assert.Equal(t, "load", Outcome(&store.Error{Kind: store.KindLoad}))
	assert.Equal(t, "validation", Outcome(&store.Error{Kind: store.KindValidation}))
}
