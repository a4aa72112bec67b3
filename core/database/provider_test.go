package database

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewProvider_Validation(t *testing.T) {
	_, err := NewProvider([]Config{{Name: ""}}, nil)
	assert.Error(t, err)

	_, err = NewProvider([]Config{{Name: "a"}, {Name: "a"}}, nil)
	assert.Error(t, err)

	p, err := NewProvider([]Config{{Name: "b", Driver: "sqlite"}, {Name: "a", Driver: "mysql"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, p.Names())

	driver, ok := p.Driver("a")
	assert.True(t, ok)
	assert.Equal(t, "mysql", driver)
}

func TestProvider_Get(t *testing.T) {
	t.Run("UnknownConnection", func(t *testing.T) {
		p, err := NewProvider(nil, nil)
		require.NoError(t, err)

		db, err := p.Get(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrUnknownConnection)
		assert.Nil(t, db)
	})

	t.Run("ConnectsOnceUnderConcurrency", func(t *testing.T) {
		var calls atomic.Int32
		p, err := NewProvider([]Config{memoryConfig("local")}, nil)
		require.NoError(t, err)
		p.WithConnectFunc(func(cfg Config) (*gorm.DB, error) {
			calls.Add(1)
			return Connect(cfg)
		})
		defer p.Close()

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				db, err := p.Get(context.Background(), "local")
				assert.NoError(t, err)
				assert.NotNil(t, db)
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("FailedConnectIsRetried", func(t *testing.T) {
		var calls atomic.Int32
		p, err := NewProvider([]Config{memoryConfig("flaky")}, nil)
		require.NoError(t, err)
		p.WithConnectFunc(func(cfg Config) (*gorm.DB, error) {
			if calls.Add(1) == 1 {
				return nil, errors.New("refused")
			}
			return Connect(cfg)
		})
		defer p.Close()

		_, err = p.Get(context.Background(), "flaky")
		assert.Error(t, err)

		db, err := p.Get(context.Background(), "flaky")
		assert.NoError(t, err)
		assert.NotNil(t, db)
		assert.Equal(t, int32(2), calls.Load())
	})
}

func TestProvider_ValidateAll(t *testing.T) {
	p, err := NewProvider([]Config{memoryConfig("good"), memoryConfig("bad")}, nil)
	require.NoError(t, err)
	p.WithConnectFunc(func(cfg Config) (*gorm.DB, error) {
		if cfg.Name == "bad" {
			return nil, errors.New("connection refused")
		}
		return Connect(cfg)
	})
	defer p.Close()

	status := p.ValidateAll(context.Background())
	assert.Equal(t, map[string]bool{"good": true, "bad": false}, status)
}

func TestProvider_ValidateAll_Concurrent(t *testing.T) {
	names := []string{"a", "b", "c", "d"}
	configs := make([]Config, 0, len(names))
	for _, n := range names {
		configs = append(configs, memoryConfig(n))
	}
	p, err := NewProvider(configs, nil)
	require.NoError(t, err)

	// Every connect waits until all of them have started; run one after
	// another, the first would give up and report the connection as down.
	var started sync.WaitGroup
	started.Add(len(names))
	all := make(chan struct{})
	go func() {
		started.Wait()
		close(all)
	}()
	p.WithConnectFunc(func(cfg Config) (*gorm.DB, error) {
		started.Done()
		select {
		case <-all:
			return Connect(cfg)
		case <-time.After(5 * time.Second):
			return nil, errors.New("connections were checked one at a time")
		}
	})
	defer p.Close()

	status := p.ValidateAll(context.Background())
	assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true, "d": true}, status)
}
