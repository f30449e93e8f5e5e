package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/mwantia/argtree/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(0)
	defer store.Close()

	base := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(context.Background(), history.Entry{
			ID:   fmt.Sprint(i),
			Time: base.Add(time.Duration(i) * time.Second),
			Line: fmt.Sprintf("cmd %d", i),
		}))
	}

	all, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "cmd 0", all[0].Line)

	recent, err := store.List(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "cmd 3", recent[0].Line)
	assert.Equal(t, "cmd 4", recent[1].Line)
	assert.Equal(t, "memory", store.Name())
}

func TestMemoryStore_Limit(t *testing.T) {
	store := NewMemoryStore(3)
	defer store.Close()

	base := time.Now()
	for i := 0; i < 10; i++ {
		require.NoError(t, store.Append(context.Background(), history.Entry{
			ID:   fmt.Sprint(i),
			Time: base.Add(time.Duration(i) * time.Second),
			Line: fmt.Sprintf("cmd %d", i),
		}))
	}

	all, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "cmd 7", all[0].Line)
	assert.Equal(t, "cmd 9", all[2].Line)
}
