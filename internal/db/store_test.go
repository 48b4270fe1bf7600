package db

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backend bundles a store with a way to move its clock forward
type backend struct {
	store   Store
	advance func(d time.Duration)
}

func newBackends(t *testing.T) map[string]backend {
	t.Helper()

	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	memNow := start
	mem := NewMemoryStore()
	mem.now = func() time.Time { return memNow }

	gdb, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })
	sqlNow := start
	sql := NewSQLStore(gdb)
	sql.now = func() time.Time { return sqlNow }

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return map[string]backend{
		"memory": {store: mem, advance: func(d time.Duration) { memNow = memNow.Add(d) }},
		"sqlite": {store: sql, advance: func(d time.Duration) { sqlNow = sqlNow.Add(d) }},
		"redis":  {store: NewRedisStore(client, "tally:"), advance: mr.FastForward},
	}
}

func TestStore_GetSetRemove(t *testing.T) {
	for name, b := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := b.store.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrKeyNotFound)

			require.NoError(t, b.store.Set(ctx, "k", []byte("v1"), 0))
			got, err := b.store.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "v1", string(got))

			// Overwrite replaces the whole value
			require.NoError(t, b.store.Set(ctx, "k", []byte("v2"), 0))
			got, err = b.store.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "v2", string(got))

			require.NoError(t, b.store.Remove(ctx, "k"))
			_, err = b.store.Get(ctx, "k")
			assert.ErrorIs(t, err, ErrKeyNotFound)

			// Removing twice is fine
			assert.NoError(t, b.store.Remove(ctx, "k"))
		})
	}
}

func TestStore_Expiry(t *testing.T) {
	for name, b := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, b.store.Set(ctx, KeySession, []byte(`{"username":"bob"}`), SessionTTL))
			require.NoError(t, b.store.Set(ctx, KeyUsers, []byte(`{}`), 0))

			b.advance(SessionTTL - time.Minute)
			_, err := b.store.Get(ctx, KeySession)
			require.NoError(t, err, "session should still be alive")

			b.advance(2 * time.Minute)
			_, err = b.store.Get(ctx, KeySession)
			assert.ErrorIs(t, err, ErrKeyNotFound)

			_, err = b.store.Get(ctx, KeyUsers)
			assert.NoError(t, err, "entries without ttl never expire")
		})
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	// Absent key keeps the caller's default
	list := []string{}
	require.NoError(t, GetJSON(ctx, s, "absent", &list))
	assert.Empty(t, list)
	assert.NotNil(t, list)

	require.NoError(t, SetJSON(ctx, s, "list", []string{"a", "b"}, 0))
	require.NoError(t, GetJSON(ctx, s, "list", &list))
	assert.Equal(t, []string{"a", "b"}, list)

	require.NoError(t, s.Set(ctx, "broken", []byte("{not json"), 0))
	var m map[string]string
	assert.Error(t, GetJSON(ctx, s, "broken", &m))
}

func TestTasksKey(t *testing.T) {
	assert.Equal(t, "tasks_bob", TasksKey("bob"))
}

func TestRedisStore_Prefix(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	s := NewRedisStore(client, "tally:")
	require.NoError(t, s.Set(context.Background(), KeyUsers, []byte("{}"), 0))

	got, err := mr.Get("tally:users")
	require.NoError(t, err)
	assert.Equal(t, "{}", got)
}

func TestOpenRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := OpenRedis(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	_ = client.Close()

	_, err = OpenRedis(context.Background(), "not a url")
	assert.Error(t, err)
}
