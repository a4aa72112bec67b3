package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// ConnectFunc opens a connection for a configuration. It is swapped in tests.
type ConnectFunc func(cfg Config) (*gorm.DB, error)

// Provider resolves connection names to pooled gorm handles.
// Handles are created on first use and reused afterwards; the provider is safe
// for concurrent use.
type Provider struct {
	configs map[string]Config
	connect ConnectFunc
	logger  *zap.Logger

	mu    sync.RWMutex
	conns map[string]*gorm.DB
	sf    singleflight.Group
}

// NewProvider creates a provider for the given connection configurations.
// Duplicate or empty names are rejected.
func NewProvider(configs []Config, logger *zap.Logger) (*Provider, error) {
	byName := make(map[string]Config, len(configs))
	for _, cfg := range configs {
		if cfg.Name == "" {
			return nil, errors.New("connection name must not be empty")
		}
		if _, dup := byName[cfg.Name]; dup {
			return nil, fmt.Errorf("duplicate connection name %q", cfg.Name)
		}
		byName[cfg.Name] = cfg.WithDefaults()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		configs: byName,
		connect: Connect,
		logger:  logger,
		conns:   make(map[string]*gorm.DB),
	}, nil
}

// WithConnectFunc replaces the function used to open connections.
func (p *Provider) WithConnectFunc(fn ConnectFunc) *Provider {
	p.connect = fn
	return p
}

// Get returns the pooled handle for name, connecting on first use.
func (p *Provider) Get(ctx context.Context, name string) (*gorm.DB, error) {
	cfg, ok := p.configs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConnection, name)
	}

	// Fast path
	p.mu.RLock()
	db, exists := p.conns[name]
	p.mu.RUnlock()
	if exists {
		return db.WithContext(ctx), nil
	}

	result, err, _ := p.sf.Do(name, func() (interface{}, error) {
		p.mu.RLock()
		db, exists := p.conns[name]
		p.mu.RUnlock()
		if exists {
			return db, nil
		}

		p.logger.Info("Opening database connection",
			zap.String("connection", name),
			zap.String("target", describe(cfg)))

		db, err := p.connect(cfg)
		if err != nil {
			return nil, err
		}

		p.mu.Lock()
		p.conns[name] = db
		p.mu.Unlock()
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*gorm.DB).WithContext(ctx), nil
}

// Names returns the configured connection names in sorted order.
func (p *Provider) Names() []string {
	names := make([]string, 0, len(p.configs))
	for name := range p.configs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Driver returns the configured driver for name.
func (p *Provider) Driver(name string) (string, bool) {
	cfg, ok := p.configs[name]
	return cfg.Driver, ok
}

// TestConnection reports whether the named connection answers a trivial query.
func (p *Provider) TestConnection(ctx context.Context, name string) bool {
	db, err := p.Get(ctx, name)
	if err != nil {
		p.logger.Warn("Connection unavailable", zap.String("connection", name), zap.Error(err))
		return false
	}
	var one int
	if err := db.Raw("SELECT 1").Row().Scan(&one); err != nil {
		p.logger.Warn("Connection check failed", zap.String("connection", name), zap.Error(err))
		return false
	}
	return true
}

// ValidateAll tests every configured connection concurrently, so one dead
// connection costs a single ping timeout however many are configured.
func (p *Provider) ValidateAll(ctx context.Context) map[string]bool {
	names := p.Names()
	healthy := make([]bool, len(names))

	var g errgroup.Group
	for i, name := range names {
		g.Go(func() error {
			healthy[i] = p.TestConnection(ctx, name)
			if healthy[i] {
				p.logger.Info("Connection healthy", zap.String("connection", name))
			}
			return nil
		})
	}
	_ = g.Wait()

	status := make(map[string]bool, len(names))
	for i, name := range names {
		status[name] = healthy[i]
	}
	return status
}

// Close closes every opened pool and forgets it.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for name, db := range p.conns {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Close()
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", name, err))
		}
		delete(p.conns, name)
	}
	return errors.Join(errs...)
}
