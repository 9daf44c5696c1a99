package connectors

import (
	"fmt"

	"github.com/aiod/metacat/pkg/domain"
)

// Registry holds the connectors the daemon was assembled with, indexed by
// platform.
type Registry struct {
	datasets     map[domain.Platform]DatasetConnector
	publications map[domain.Platform]PublicationConnector
}

// New builds a Registry from the given connectors.
func New(
	datasets []DatasetConnector, publications []PublicationConnector,
) *Registry {
	r := &Registry{
		datasets:     map[domain.Platform]DatasetConnector{},
		publications: map[domain.Platform]PublicationConnector{},
	}
	for _, c := range datasets {
		r.datasets[c.Platform()] = c
	}
	for _, c := range publications {
		r.publications[c.Platform()] = c
	}
	return r
}

// Datasets resolves the dataset connector for a platform name.
//
// # Returns
//
// - DatasetConnector
//
// - error: domain.ErrUnknownPlatform when the name is not a platform at
// all; ErrNoConnector when the platform is known but has no dataset
// connector.
func (r *Registry) Datasets(name string) (DatasetConnector, error) {
	platform, err := domain.AsPlatform(name)
	if err != nil {
		return nil, err
	}
	connector, ok := r.datasets[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %s (datasets)", ErrNoConnector, platform)
	}
	return connector, nil
}

// Publications resolves the publication connector for a platform name.
func (r *Registry) Publications(name string) (PublicationConnector, error) {
	platform, err := domain.AsPlatform(name)
	if err != nil {
		return nil, err
	}
	connector, ok := r.publications[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %s (publications)", ErrNoConnector, platform)
	}
	return connector, nil
}
