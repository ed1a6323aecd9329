package cache_test

import (
	"testing"
	"time"

	"github.com/dmitrymomot/lazyi18n/pkg/cache"
	"github.com/dmitrymomot/lazyi18n/pkg/translation"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStoreGetHit(t *testing.T) {
	t.Parallel()

	db, mock := redismock.NewClientMock()
	defer db.Close()

	store := cache.NewRedisStore[string](db, "i18n:", time.Minute)
	mock.ExpectGet("i18n:key:en:common.hello").SetVal(`"Hello"`)

	got, ok := store.Get("key:en:common.hello")
	require.True(t, ok)
	assert.Equal(t, "Hello", got)
	require.NoError(t, mock.ExpectationsWereMet())

	stats := store.Stats()
	assert.Equal(t, int64(1), stats.Hits)
}

func TestRedisStoreGetMiss(t *testing.T) {
	t.Parallel()

	db, mock := redismock.NewClientMock()
	defer db.Close()

	store := cache.NewRedisStore[string](db, "i18n:", time.Minute)
	mock.ExpectGet("i18n:key:en:missing").RedisNil()

	_, ok := store.Get("key:en:missing")
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, int64(1), store.Stats().Misses)
}

func TestRedisStoreGetMalformedValue(t *testing.T) {
	t.Parallel()

	db, mock := redismock.NewClientMock()
	defer db.Close()

	store := cache.NewRedisStore[translation.Payload](db, "i18n:", time.Minute)
	mock.ExpectGet("i18n:locale:en").SetVal(`{not json`)

	_, ok := store.Get("locale:en")
	assert.False(t, ok, "malformed values degrade to a miss")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreSetUsesDefaultTTL(t *testing.T) {
	t.Parallel()

	db, mock := redismock.NewClientMock()
	defer db.Close()

	store := cache.NewRedisStore[string](db, "i18n:", time.Minute)
	mock.ExpectSet("i18n:key:en:a", []byte(`"v"`), time.Minute).SetVal("OK")

	store.Set("key:en:a", "v")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStorePayloadRoundTrip(t *testing.T) {
	t.Parallel()

	db, mock := redismock.NewClientMock()
	defer db.Close()

	store := cache.NewRedisStore[translation.Payload](db, "i18n:", time.Hour)

	payload := translation.Payload{"common": {"hello": "Xin chào"}}
	mock.ExpectSet("i18n:locale:vi", []byte(`{"common":{"hello":"Xin chào"}}`), time.Hour).SetVal("OK")
	mock.ExpectGet("i18n:locale:vi").SetVal(`{"common":{"hello":"Xin chào"}}`)

	store.Set("locale:vi", payload)
	got, ok := store.Get("locale:vi")
	require.True(t, ok)
	assert.Equal(t, payload, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreDeleteAndHas(t *testing.T) {
	t.Parallel()

	db, mock := redismock.NewClientMock()
	defer db.Close()

	store := cache.NewRedisStore[string](db, "i18n:", time.Minute)

	mock.ExpectExists("i18n:k").SetVal(1)
	assert.True(t, store.Has("k"))

	mock.ExpectDel("i18n:k").SetVal(1)
	assert.True(t, store.Delete("k"))

	mock.ExpectExists("i18n:k").SetVal(0)
	assert.False(t, store.Has("k"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreAsLocaleTier(t *testing.T) {
	t.Parallel()

	db, mock := redismock.NewClientMock()
	defer db.Close()

	remote := cache.NewRedisStore[translation.Payload](db, "shared:", time.Hour)

	m, err := cache.NewManager(testManagerConfig(), cache.WithLocaleStore(remote))
	require.NoError(t, err)
	defer m.Close()

	mock.ExpectSet("shared:locale:en", []byte(`{"common":{"a":"b"}}`), time.Hour).SetVal("OK")
	mock.ExpectGet("shared:locale:en").SetVal(`{"common":{"a":"b"}}`)

	m.SetLocale("en", translation.Payload{"common": {"a": "b"}})
	payload, ok := m.GetLocale("en")
	require.True(t, ok)
	assert.Equal(t, "b", payload["common"]["a"])
	require.NoError(t, mock.ExpectationsWereMet())
}
