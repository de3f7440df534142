package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/domain/chat"
)

func TestMemoryStore_SetGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", "v1", 0))

	val, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "v1", val)
}

func TestMemoryStore_MissIsTypedError(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, chat.ErrCacheMiss)
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	current := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return current })

	require.NoError(t, store.Set(ctx, "k1", "v1", time.Minute))

	val, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "v1", val)

	// 시계를 TTL 이후로 이동
	current = current.Add(2 * time.Minute)
	_, err = store.Get(ctx, "k1")
	assert.ErrorIs(t, err, chat.ErrCacheMiss)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", "v1", 0))
	require.NoError(t, store.Delete(ctx, "k1"))
	_, err := store.Get(ctx, "k1")
	assert.ErrorIs(t, err, chat.ErrCacheMiss)

	// 없는 키 삭제는 오류가 아니다
	assert.NoError(t, store.Delete(ctx, "missing"))
}

func TestMemoryStore_KeysMatching(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "chat:history:u1:m1", "a", 0))
	require.NoError(t, store.Set(ctx, "chat:history:u1:m2", "b", 0))
	require.NoError(t, store.Set(ctx, "chat:history:u2:m1", "c", 0))
	require.NoError(t, store.Set(ctx, "chat:context:u1", "d", 0))

	keys, err := store.KeysMatching(ctx, "chat:history:u1:*")
	require.NoError(t, err)
	assert.Len(t, keys, 2)

	keys, err = store.KeysMatching(ctx, "chat:history:*")
	require.NoError(t, err)
	assert.Len(t, keys, 3)

	keys, err = store.KeysMatching(ctx, "nothing:*")
	require.NoError(t, err)
	assert.Empty(t, keys)
}
