package repositories

import (
	"fmt"
	"sort"

	domainRepos "github.com/rios0rios0/pkgsync/internal/domain/repositories"
)

// PublisherRegistry manages all registered publisher implementations.
type PublisherRegistry struct {
	publishers map[string]domainRepos.PublisherRepository
}

// NewPublisherRegistry creates an empty publisher registry.
func NewPublisherRegistry() *PublisherRegistry {
	return &PublisherRegistry{
		publishers: make(map[string]domainRepos.PublisherRepository),
	}
}

// Register adds a publisher under its own name.
func (r *PublisherRegistry) Register(publisher domainRepos.PublisherRepository) {
	r.publishers[publisher.Name()] = publisher
}

// Get returns the publisher registered under name.
func (r *PublisherRegistry) Get(name string) (domainRepos.PublisherRepository, error) {
	publisher, ok := r.publishers[name]
	if !ok {
		return nil, fmt.Errorf("unknown publisher: %q (available: %v)", name, r.Names())
	}
	return publisher, nil
}

// Names returns the sorted list of registered publisher names.
func (r *PublisherRegistry) Names() []string {
	names := make([]string, 0, len(r.publishers))
	for name := range r.publishers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
