package lambda

import (
	"context"
	"errors"
	"sync"
	"time"

	"image-pipeline/internal/config"
	"image-pipeline/pkg/server"
)

// ClientManager keeps the service container, and the AWS clients inside it,
// alive across invocations of the same function instance
type ClientManager struct {
	container   *server.Container
	lastUsed    time.Time
	mu          sync.RWMutex
	initialized bool
	initOnce    sync.Once
	initErr     error
	config      *config.Config
}

var errContainerUnavailable = errors.New("service container unavailable")

var (
	globalClientManager *ClientManager
	clientManagerOnce   sync.Once
)

// GetClientManager returns the global client manager instance
func GetClientManager() *ClientManager {
	clientManagerOnce.Do(func() {
		globalClientManager = &ClientManager{}
	})
	return globalClientManager
}

// Initialize builds the container once; later calls return the first result
func (cm *ClientManager) Initialize(ctx context.Context, cfg *config.Config) error {
	cm.initOnce.Do(func() {
		cm.mu.Lock()
		defer cm.mu.Unlock()

		cm.config = cfg
		container, err := server.NewContainer(ctx, cfg)
		if err != nil {
			cm.initErr = err
			return
		}

		cm.container = container
		cm.lastUsed = time.Now()
		cm.initialized = true
	})

	return cm.initErr
}

// GetContainer returns the service container, initializing if necessary
func (cm *ClientManager) GetContainer(ctx context.Context) (*server.Container, error) {
	if cm.IsHealthy() {
		idle := time.Since(cm.LastUsed())
		cm.mu.RLock()
		container := cm.container
		cm.mu.RUnlock()

		if container != nil {
			container.Logger.WithField("idle_ms", idle.Milliseconds()).Debug("Reusing warm container")
			cm.UpdateLastUsed()
			return container, nil
		}
	}

	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		return nil, err
	}
	if err := cm.Initialize(ctx, cfg); err != nil {
		return nil, err
	}

	cm.mu.RLock()
	defer cm.mu.RUnlock()
	if cm.container == nil {
		return nil, errContainerUnavailable
	}
	return cm.container, nil
}

// IsHealthy checks if the client manager holds a live container
func (cm *ClientManager) IsHealthy() bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	return cm.initialized && cm.container != nil
}

// LastUsed returns when the container was last handed out
func (cm *ClientManager) LastUsed() time.Time {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.lastUsed
}

// Cleanup performs cleanup operations
func (cm *ClientManager) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil {
		if err := cm.container.Close(); err != nil {
			return err
		}
		cm.container = nil
	}

	// Allow the next GetContainer to build a fresh container
	cm.initialized = false
	cm.initErr = nil
	cm.initOnce = sync.Once{}
	return nil
}

// UpdateLastUsed updates the last used timestamp
func (cm *ClientManager) UpdateLastUsed() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.lastUsed = time.Now()
}
