package metrics

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counts(t *testing.T) {
	r := New()

	r.Request("ok")
	r.Request("ok")
	r.Request("unavailable")
	r.SlotFilled("breakfast", "exact")
	r.SlotFilled("breakfast", "no-cuisine")
	r.SlotFilled("breakfast", "exact")
	r.SlotEmpty("dinner")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.RequestsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.RequestsTotal.WithLabelValues("unavailable")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.SlotsFilledTotal.WithLabelValues("breakfast", "exact")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.SlotsFilledTotal.WithLabelValues("breakfast", "no-cuisine")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.SlotsEmptyTotal.WithLabelValues("dinner")))
}

func TestRecorder_WriteText(t *testing.T) {
	r := New()
	r.SlotFilled("lunch", "slot-only")

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))

	out := buf.String()
	assert.Contains(t, out, "# TYPE recipe_match_slots_filled_total counter")
	assert.Contains(t, out, `recipe_match_slots_filled_total{level="slot-only",meal="lunch"} 1`)
}

func TestRecorder_SeparateRegistries(t *testing.T) {
	a, b := New(), New()
	a.Request("ok")
	assert.Equal(t, 0.0, testutil.ToFloat64(b.RequestsTotal.WithLabelValues("ok")))
}
