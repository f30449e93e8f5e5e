package history_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mwantia/argtree/history"
	"github.com/mwantia/argtree/history/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		address string
		want    history.Address
	}{
		{":memory:", history.Address{Scheme: history.SchemeMemory}},
		{"sqlite://./history.db", history.Address{Scheme: history.SchemeSQLite, Path: "./history.db"}},
		{"sqlite://:memory:", history.Address{Scheme: history.SchemeSQLite, Path: ":memory:"}},
		{"postgres://u:p@localhost:5432/db", history.Address{Scheme: history.SchemePostgres, DSN: "postgres://u:p@localhost:5432/db"}},
		{"consul://127.0.0.1:8500/argtree/history?token=abc", history.Address{
			Scheme: history.SchemeConsul, Host: "127.0.0.1:8500", Path: "argtree/history", Token: "abc",
		}},
		{"s3://localhost:9000/bucket?access_key=a&secret_key=s&ssl=true&prefix=cli", history.Address{
			Scheme: history.SchemeS3, Host: "localhost:9000", Path: "bucket",
			AccessKey: "a", SecretKey: "s", Prefix: "cli", SSL: true,
		}},
	}

	for _, tt := range tests {
		got, err := history.ParseAddress(tt.address)
		require.NoError(t, err, tt.address)
		assert.Equal(t, tt.want, *got, tt.address)
	}
}

func TestParseAddress_Errors(t *testing.T) {
	_, err := history.ParseAddress("history.db")
	assert.True(t, errors.Is(err, history.ErrMalformedAddress))

	_, err = history.ParseAddress("redis://localhost")
	assert.True(t, errors.Is(err, history.ErrUnknownScheme))

	_, err = history.ParseAddress("s3://localhost:9000")
	assert.True(t, errors.Is(err, history.ErrMalformedAddress))

	_, err = history.ParseAddress("s3://localhost:9000/bucket?ssl=maybe")
	assert.True(t, errors.Is(err, history.ErrMalformedAddress))
}

func TestTail(t *testing.T) {
	entries := []history.Entry{{ID: "1"}, {ID: "2"}, {ID: "3"}}

	assert.Len(t, history.Tail(entries, 0), 3)
	assert.Len(t, history.Tail(entries, 5), 3)
	assert.Equal(t, []history.Entry{{ID: "2"}, {ID: "3"}}, history.Tail(entries, 2))
}

func TestEntry_Key(t *testing.T) {
	now := time.Now()
	early := history.Entry{ID: "b", Time: now}
	late := history.Entry{ID: "a", Time: now.Add(time.Millisecond)}
	assert.Less(t, early.Key(), late.Key())

	data, err := late.Marshal()
	require.NoError(t, err)
	decoded, err := history.Unmarshal(data)
	require.NoError(t, err)
	assert.True(t, late.Time.Equal(decoded.Time))
	assert.Equal(t, late.ID, decoded.ID)
}

type failingStore struct {
	history.Store
}

func (failingStore) Append(context.Context, history.Entry) error {
	return errors.New("unavailable")
}

func (failingStore) Close() error {
	return nil
}

func TestMulti(t *testing.T) {
	first, second := memory.NewMemoryStore(0), memory.NewMemoryStore(0)
	store := history.Multi(first, second)
	defer store.Close()

	entry := history.Entry{ID: "1", Time: time.Now(), Line: "reverse foobar", Path: []string{"reverse"}}
	require.NoError(t, store.Append(context.Background(), entry))

	for _, s := range []history.Store{first, second} {
		entries, err := s.List(context.Background(), 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "reverse", entries[0].Command())
	}

	entries, err := store.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	failing := history.Multi(memory.NewMemoryStore(0), failingStore{})
	assert.Error(t, failing.Append(context.Background(), entry))
}
