package batch

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/alexiusacademia/goliq/internal/borehole"
	"github.com/alexiusacademia/goliq/internal/liquefaction"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newPipeline(t *testing.T) *liquefaction.Pipeline {
	t.Helper()
	year, level, given, region, ground := 2017, 1, false, "A1", 2
	p, err := liquefaction.NewPipeline("JRA", liquefaction.RawParams{
		Year: &year, EQLevel: &level, IsGivenKhgl: &given, RegionalClass: &region, GroundType: &ground,
	}, nil, nil)
	require.NoError(t, err)
	return p
}

func TestDiscover(t *testing.T) {
	paths, err := Discover("testdata", "*.xml")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("testdata", "no-spt.XML"),
		filepath.Join("testdata", "site-a.XML"),
		filepath.Join("testdata", "site-b.XML"),
	}, paths)

	paths, err = Discover("testdata", "site-*")
	require.NoError(t, err)
	assert.Len(t, paths, 2)

	_, err = Discover("testdata", "[")
	assert.Error(t, err)

	_, err = Discover(filepath.Join("testdata", "missing"), "")
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	paths, err := Discover("testdata", "")
	require.NoError(t, err)

	r := &Runner{Pipeline: newPipeline(t), Jobs: 2}
	results, err := r.Run(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, res := range results {
		assert.Equal(t, paths[i], res.Path)
	}
	assert.ErrorIs(t, results[0].Err, borehole.ErrNoSPT)
	for _, res := range results[1:] {
		require.NoError(t, res.Err, res.Path)
		require.NotNil(t, res.Assessment)
		assert.Len(t, res.Assessment.Rows, 2)
		assert.Equal(t, 1.2, res.Assessment.GroundWaterLevel)
	}

	failed := Failed(results)
	require.Len(t, failed, 1)
	assert.Equal(t, paths[0], failed[0].Path)
}

func TestRunWithCacheAndOverride(t *testing.T) {
	cache, err := borehole.OpenCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer cache.Close()

	paths := []string{filepath.Join("testdata", "site-a.XML"), filepath.Join("testdata", "site-b.XML")}
	gwl := 3.0
	r := &Runner{
		Pipeline: newPipeline(t),
		Loader:   &borehole.Loader{Cache: cache},
		Jobs:     4,
		GWL:      &gwl,
	}

	for i := 0; i < 2; i++ {
		results, err := r.Run(context.Background(), paths)
		require.NoError(t, err)
		for _, res := range results {
			require.NoError(t, res.Err)
			assert.Equal(t, 3.0, res.Assessment.GroundWaterLevel)
		}
	}

	n, err := cache.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &Runner{Pipeline: newPipeline(t), Jobs: 1}
	results, err := r.Run(ctx, []string{filepath.Join("testdata", "site-a.XML")})
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
}
