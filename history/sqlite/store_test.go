package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/mwantia/argtree/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore(t *testing.T) {
	factories := map[string]func() string{
		"memory": func() string { return ":memory:" },
		"file":   func() string { return filepath.Join(t.TempDir(), "history.db") },
	}

	for name, path := range factories {
		t.Run(name, func(t *testing.T) {
			store, err := NewSQLiteStore(path())
			require.NoError(t, err)
			defer store.Close()

			base := time.Now()
			for i := 0; i < 4; i++ {
				require.NoError(t, store.Append(context.Background(), history.Entry{
					ID:    fmt.Sprint(i),
					Time:  base.Add(time.Duration(i) * time.Second),
					Line:  fmt.Sprintf("led on %d", i),
					Path:  []string{"led", "on"},
					Error: map[bool]string{true: "failed"}[i == 3],
				}))
			}

			recent, err := store.List(context.Background(), 2)
			require.NoError(t, err)
			require.Len(t, recent, 2)
			assert.Equal(t, "led on 2", recent[0].Line)
			assert.Equal(t, "led on 3", recent[1].Line)
			assert.Equal(t, []string{"led", "on"}, recent[1].Path)
			assert.Equal(t, "failed", recent[1].Error)
			assert.Equal(t, base.Add(3*time.Second).UnixNano(), recent[1].Time.UnixNano())

			all, err := store.List(context.Background(), 0)
			require.NoError(t, err)
			assert.Len(t, all, 4)
		})
	}
}
