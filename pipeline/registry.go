package pipeline

import (
	"fmt"
	"sync"

	"github.com/cloudenochcsis/Volatility-Script/util"
)

// Factory creates a fresh pipeline instance.
type Factory func() (Pipeline, error)

var (
	// DefaultRegistry holds the registered pipeline factories.
	DefaultRegistry = make(map[string]Factory)
	registryMutex   = &sync.RWMutex{}
)

// Register adds a pipeline factory to the DefaultRegistry. It returns an
// error if a pipeline with the same name is already registered.
func Register(name string, factory Factory) error {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	if _, exists := DefaultRegistry[name]; exists {
		return fmt.Errorf("pipeline with name '%s' already registered", name)
	}
	DefaultRegistry[name] = factory
	return nil
}

// GetPipeline builds a new pipeline instance from its registered factory.
func GetPipeline(name string) (Pipeline, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	factory, exists := DefaultRegistry[name]
	if !exists {
		return nil, fmt.Errorf("pipeline with name '%s' not found in registry", name)
	}
	return factory()
}

// RegisteredNames returns the names of all registered pipelines, sorted.
func RegisteredNames() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	names := make([]string, 0, len(DefaultRegistry))
	for name := range DefaultRegistry {
		names = append(names, name)
	}
	return util.SortedStrings(names)
}
