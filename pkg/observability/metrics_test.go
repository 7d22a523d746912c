package observability_test

import (
	"context"
	"testing"

	"github.com/aretw0/waypoint/pkg/automata"
	"github.com/aretw0/waypoint/pkg/observability"
	"github.com/aretw0/waypoint/pkg/urlmatch"
	"github.com/aretw0/waypoint/pkg/urltemplate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_MatchHooks(t *testing.T) {
	metrics, err := observability.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	m := urlmatch.New[string](urlmatch.WithHooks(metrics.MatchHooks()))
	require.NoError(t, m.Add(urltemplate.MustParse("/users/{id}/edit"), "edit"))

	for _, url := range []string{"/users/1/edit", "/users/2", "/nowhere"} {
		_, err := m.Match(url)
		require.NoError(t, err)
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Matches.WithLabelValues(observability.ResultFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Matches.WithLabelValues(observability.ResultPartial)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Matches.WithLabelValues(observability.ResultMiss)))
}

func TestMetrics_MachineHooks(t *testing.T) {
	metrics, err := observability.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	b := automata.NewBuilder[int]()
	one := b.MatchOne(automata.NewName("one"), automata.Equal(1))
	done := b.Return(automata.NewName("done"))
	b.SetTrue(one, done).Initial(one)
	g, err := b.Build()
	require.NoError(t, err)

	ctx := context.Background()
	m := automata.New(g, automata.WithHooks(observability.MachineHooks[int](metrics)))
	require.NoError(t, m.Start(ctx))
	_, err = m.HandleIncoming(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Rounds))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ActiveStates))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Entered.WithLabelValues("done")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Returned.WithLabelValues("done")))

	samples, err := metrics.Snapshot()
	require.NoError(t, err)
	assert.Contains(t, samples, observability.Sample{Name: "waypoint_machine_rounds_total", Value: 1})
	assert.Contains(t, samples, observability.Sample{Name: "waypoint_machine_returns_total", Labels: "state=done", Value: 1})
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}

func TestNewMetrics_NilRegisterer(t *testing.T) {
	metrics, err := observability.NewMetrics(nil)
	require.NoError(t, err)
	samples, err := metrics.Snapshot()
	require.NoError(t, err)
	assert.NotEmpty(t, samples)
}
