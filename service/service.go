// Package service declares the collaborators every operation delegates to.
//
// The business logic behind these interfaces (fetching from GitHub,
// developer.overheid.nl and the componentencatalogus, mapping payloads,
// rating, persisting objects) lives in the gateway. This package only fixes
// the method set. Every method takes the configuration mapping it was given
// and returns its result as-is; a nil, false or empty result is the
// gateway's way of signalling that nothing was done.
package service

import (
	"context"

	"github.com/pithecene-io/catalogi/types"
)

// Catalogi synchronises catalogi known to this installation.
type Catalogi interface {
	CatalogiHandler(ctx context.Context, data, configuration types.Data) (any, error)
}

// ComponentenCatalogus imports from componentencatalogus.commonground.nl.
type ComponentenCatalogus interface {
	GetApplications(ctx context.Context, data, configuration types.Data) (any, error)
	GetApplication(ctx context.Context, id string, configuration types.Data) (any, error)
	GetComponents(ctx context.Context, data, configuration types.Data) (any, error)
	GetComponent(ctx context.Context, id string, configuration types.Data) (any, error)
	ApplicationToGateway(ctx context.Context, data, configuration types.Data) (any, error)
}

// DeveloperOverheid imports from developer.overheid.nl.
type DeveloperOverheid interface {
	GetComponents(ctx context.Context, data, configuration types.Data) (any, error)
	GetComponent(ctx context.Context, id string, configuration types.Data) (any, error)
	GetRepositories(ctx context.Context, data, configuration types.Data) (any, error)
	GetRepository(ctx context.Context, id string, configuration types.Data) (any, error)
}

// GithubPubliccode discovers repositories carrying a publiccode.yml.
type GithubPubliccode interface {
	GetRepositories(ctx context.Context, data, configuration types.Data) (any, error)
	GetRepository(ctx context.Context, id string, configuration types.Data) (any, error)
}

// GithubAPI reads organisations from the GitHub API.
type GithubAPI interface {
	GetOrganisations(ctx context.Context, data, configuration types.Data) (any, error)
	GetOrganisation(ctx context.Context, id string, configuration types.Data) (any, error)
}

// GithubEvent applies a GitHub webhook event to the stored repository.
type GithubEvent interface {
	UpdateRepositoryWithEvent(ctx context.Context, data, configuration types.Data) (any, error)
}

// Rating scores components. An empty componentID rates every component.
type Rating interface {
	EnrichComponentsWithRating(ctx context.Context, data, configuration types.Data, componentID string) (any, error)
}

// EnrichPubliccode enriches repositories with their publiccode.yml.
// An empty repositoryID enriches every repository.
type EnrichPubliccode interface {
	EnrichPubliccode(ctx context.Context, data, configuration types.Data, repositoryID string) (any, error)
}

// EnrichPubliccodeFromGithubURL enriches a repository given by GitHub URL in data.
type EnrichPubliccodeFromGithubURL interface {
	EnrichFromGithubURL(ctx context.Context, data, configuration types.Data) (any, error)
}

// EnrichOrganization enriches organisations. An empty organizationID
// enriches every organisation.
type EnrichOrganization interface {
	EnrichOrganization(ctx context.Context, data, configuration types.Data, organizationID string) (any, error)
}

// FindOrganizationThroughRepositories derives owning organisations from
// repositories. An empty repositoryID walks every repository.
type FindOrganizationThroughRepositories interface {
	FindOrganizations(ctx context.Context, data, configuration types.Data, repositoryID string) (any, error)
}

// FindGithubRepositoryThroughOrganization lists an organisation's
// repositories. An empty organizationID walks every organisation.
type FindGithubRepositoryThroughOrganization interface {
	FindRepositories(ctx context.Context, data, configuration types.Data, organizationID string) (any, error)
}

// Federalization exchanges catalogi with other installations.
type Federalization interface {
	SyncCatalogi(ctx context.Context, data, configuration types.Data) (any, error)
	SyncCatalogus(ctx context.Context, id string, configuration types.Data) (any, error)
	RegisterCatalogi(ctx context.Context, data, configuration types.Data) (any, error)
}

// FormInput turns a submitted form into a publication update.
type FormInput interface {
	UpdatePublication(ctx context.Context, data, configuration types.Data) (any, error)
}

// DownloadObject renders a stored object for download.
type DownloadObject interface {
	Download(ctx context.Context, data, configuration types.Data) (any, error)
}

// Set holds one implementation of every service.
// A nil field means the service is not available; operations bound to it
// are not registered.
type Set struct {
	Catalogi                                Catalogi
	ComponentenCatalogus                    ComponentenCatalogus
	DeveloperOverheid                       DeveloperOverheid
	GithubPubliccode                        GithubPubliccode
	GithubAPI                               GithubAPI
	GithubEvent                             GithubEvent
	Rating                                  Rating
	EnrichPubliccode                        EnrichPubliccode
	EnrichPubliccodeFromGithubURL           EnrichPubliccodeFromGithubURL
	EnrichOrganization                      EnrichOrganization
	FindOrganizationThroughRepositories     FindOrganizationThroughRepositories
	FindGithubRepositoryThroughOrganization FindGithubRepositoryThroughOrganization
	Federalization                          Federalization
	FormInput                               FormInput
	DownloadObject                          DownloadObject
}
