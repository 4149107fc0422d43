package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(at time.Time) (*Cache, *time.Time) {
	now := at
	c := NewCache()
	c.now = func() time.Time { return now }
	return c, &now
}

func TestGetFetchesOncePerFreshKey(t *testing.T) {
	c, _ := newTestCache(time.Now())
	key := K("students", "anna", "1", "10")

	calls := 0
	fetch := func(ctx context.Context) ([]string, error) {
		calls++
		return []string{"row"}, nil
	}

	for i := 0; i < 5; i++ {
		v, err := Get(context.Background(), c, key, fetch)
		require.NoError(t, err)
		assert.Equal(t, []string{"row"}, v)
	}
	assert.Equal(t, 1, calls, "repeated lookups within the freshness window must collapse")
}

func TestGetRefetchesAfterFreshnessWindow(t *testing.T) {
	c, now := newTestCache(time.Now())
	key := K("students", "", "1", "10")

	calls := 0
	fetch := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	v, err := Get(context.Background(), c, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	*now = now.Add(Freshness + time.Millisecond)

	v, err = Get(context.Background(), c, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestDifferentParamsAreDifferentKeys(t *testing.T) {
	c, _ := newTestCache(time.Now())

	calls := 0
	fetch := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	_, err := Get(context.Background(), c, K("lessons", "", "1", "10"), fetch)
	require.NoError(t, err)
	_, err = Get(context.Background(), c, K("lessons", "", "2", "10"), fetch)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestMutateInvalidatesEveryKeyOfResource(t *testing.T) {
	c, _ := newTestCache(time.Now())

	calls := 0
	fetch := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	_, err := Get(context.Background(), c, K("admins", "a", "1", "10"), fetch)
	require.NoError(t, err)
	_, err = Get(context.Background(), c, K("admins", "b", "1", "10"), fetch)
	require.NoError(t, err)
	require.Equal(t, 2, calls)

	err = c.Mutate(context.Background(), "admins", func(ctx context.Context) error { return nil })
	require.NoError(t, err)

	_, err = Get(context.Background(), c, K("admins", "a", "1", "10"), fetch)
	require.NoError(t, err)
	_, err = Get(context.Background(), c, K("admins", "b", "1", "10"), fetch)
	require.NoError(t, err)
	assert.Equal(t, 4, calls, "every list variant of the mutated resource must refetch")
}

func TestMutateDoesNotInvalidateOnFailure(t *testing.T) {
	c, _ := newTestCache(time.Now())

	calls := 0
	fetch := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}
	key := K("teachers", "1", "10")

	_, err := Get(context.Background(), c, key, fetch)
	require.NoError(t, err)

	err = c.Mutate(context.Background(), "teachers", func(ctx context.Context) error {
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_, err = Get(context.Background(), c, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "a failed mutation must keep the cache intact")
}

func TestMutateLeavesOtherResourcesAlone(t *testing.T) {
	c, _ := newTestCache(time.Now())

	calls := 0
	fetch := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	_, err := Get(context.Background(), c, K("lessons", "1", "10"), fetch)
	require.NoError(t, err)

	require.NoError(t, c.Mutate(context.Background(), "transactions", func(ctx context.Context) error { return nil }))

	_, err = Get(context.Background(), c, K("lessons", "1", "10"), fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestMutateInvalidatesExtraKeys(t *testing.T) {
	c, _ := newTestCache(time.Now())

	calls := 0
	fetch := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}
	extra := K("lessons", "teacher", "7")

	_, err := Get(context.Background(), c, extra, fetch)
	require.NoError(t, err)

	require.NoError(t, c.Mutate(context.Background(), "transactions", func(ctx context.Context) error { return nil }, extra))

	_, err = Get(context.Background(), c, extra, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestSupersededFetchResultIsNotStored(t *testing.T) {
	c, _ := newTestCache(time.Now())
	key := K("students", "an", "1", "10")

	// the fetch is overtaken by an invalidation while in flight
	v, err := Get(context.Background(), c, key, func(ctx context.Context) (string, error) {
		c.InvalidateResource("students")
		return "stale", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "stale", v, "the caller still gets the value it asked for")

	calls := 0
	fresh, err := Get(context.Background(), c, key, func(ctx context.Context) (string, error) {
		calls++
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", fresh)
	assert.Equal(t, 1, calls, "the superseded result must not have been cached")
}

func TestClearWipesEverything(t *testing.T) {
	c, _ := newTestCache(time.Now())

	calls := 0
	fetch := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	_, err := Get(context.Background(), c, K("admins", "1"), fetch)
	require.NoError(t, err)
	_, err = Get(context.Background(), c, K("lessons", "1"), fetch)
	require.NoError(t, err)

	c.Clear()

	_, err = Get(context.Background(), c, K("admins", "1"), fetch)
	require.NoError(t, err)
	_, err = Get(context.Background(), c, K("lessons", "1"), fetch)
	require.NoError(t, err)
	assert.Equal(t, 4, calls)
}

func TestGetErrorIsNotCached(t *testing.T) {
	c, _ := newTestCache(time.Now())
	key := K("teachers", "1", "10")

	_, err := Get(context.Background(), c, key, func(ctx context.Context) (int, error) {
		return 0, assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	v, err := Get(context.Background(), c, key, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestKeyResource(t *testing.T) {
	assert.Equal(t, "students", K("students", "a", "1").Resource())
	assert.Equal(t, "", Key{}.Resource())
}
