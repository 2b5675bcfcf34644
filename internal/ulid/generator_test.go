package ulid

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidID(t *testing.T) {
	validULID := GenerateID()

	tests := []struct {
		id       string
		expected bool
	}{
		{validULID, true},
		{strings.ToLower(validULID), false},
		{"0", false},
		{"invalidulid", false},
		{"01B4E6BXY0PRJ5G420D25MWQY!", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidID(tt.id))
		})
	}
}

func TestCreatedAt(t *testing.T) {
	before := time.Now().Add(-time.Second)
	created, err := CreatedAt(GenerateID())
	require.NoError(t, err)
	assert.True(t, created.After(before))

	_, err = CreatedAt("nope")
	require.Error(t, err)
}

func TestMockGenerator(t *testing.T) {
	MockGenerator("01HZ0000000000000000000000")
	t.Cleanup(ResetGenerator)

	assert.Equal(t, "01HZ0000000000000000000000", GenerateID())
	ResetGenerator()
	assert.NotEqual(t, "01HZ0000000000000000000000", GenerateID())
}

func TestGenerateUniqueID(t *testing.T) {
	t.Run("uniqueness", func(t *testing.T) {
		assert.NotEqual(t, GenerateID(), GenerateID())
	})

	t.Run("concurrent uniqueness", func(t *testing.T) {
		var wg sync.WaitGroup
		ids := make(map[string]struct{})
		mu := sync.Mutex{}

		numIDs := 10000

		wg.Add(numIDs)
		for i := 0; i < numIDs; i++ {
			go func() {
				defer wg.Done()
				id := GenerateID()
				mu.Lock()
				defer mu.Unlock()
				ids[id] = struct{}{}
			}()
		}

		wg.Wait()

		assert.Equal(t, numIDs, len(ids))
	})
}
