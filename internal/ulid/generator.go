// Package ulid generates identifiers for editing sessions.
package ulid

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
)

var (
	entropy     io.Reader
	entropyOnce sync.Once

	generatorMu sync.RWMutex
	generator   = DefaultGenerator
)

// DefaultEntropy returns a reader that generates monotonic ULID entropy.
// It is safe for concurrent use.
func DefaultEntropy() io.Reader {
	entropyOnce.Do(func() {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))

		entropy = &ulid.LockedMonotonicReader{
			MonotonicReader: ulid.Monotonic(rng, 0),
		}
	})
	return entropy
}

// ValidID reports whether id is a canonical, upper-case ULID.
func ValidID(id string) bool {
	_, err := ulid.ParseStrict(id)
	return err == nil && id == normalize(id)
}

func normalize(id string) string {
	parsed, err := ulid.ParseStrict(id)
	if err != nil {
		return ""
	}
	return parsed.String()
}

// CreatedAt returns the time encoded in id.
func CreatedAt(id string) (time.Time, error) {
	parsed, err := ulid.ParseStrict(id)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid id %q", id)
	}
	return ulid.Time(parsed.Time()), nil
}

// GenerateID returns a new session identifier.
func GenerateID() string {
	generatorMu.RLock()
	defer generatorMu.RUnlock()
	return generator()
}

func DefaultGenerator() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), DefaultEntropy()).String()
}

func ResetGenerator() {
	generatorMu.Lock()
	defer generatorMu.Unlock()
	generator = DefaultGenerator
}

// MockGenerator makes GenerateID return mockValue until ResetGenerator is called.
func MockGenerator(mockValue string) {
	generatorMu.Lock()
	defer generatorMu.Unlock()
	generator = func() string {
		return mockValue
	}
}
