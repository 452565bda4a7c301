package remote

import (
	"context"

	"github.com/pithecene-io/catalogi/service"
	"github.com/pithecene-io/catalogi/types"
)

// NewSet binds every service of the bundle to c.
func NewSet(c *Client) service.Set {
	return service.Set{
		Catalogi:                                catalogi{c},
		ComponentenCatalogus:                    componentenCatalogus{c},
		DeveloperOverheid:                       developerOverheid{c},
		GithubPubliccode:                        githubPubliccode{c},
		GithubAPI:                               githubAPI{c},
		GithubEvent:                             githubEvent{c},
		Rating:                                  rating{c},
		EnrichPubliccode:                        enrichPubliccode{c},
		EnrichPubliccodeFromGithubURL:           enrichPubliccodeFromGithubURL{c},
		EnrichOrganization:                      enrichOrganization{c},
		FindOrganizationThroughRepositories:     findOrganization{c},
		FindGithubRepositoryThroughOrganization: findGithubRepository{c},
		Federalization:                          federalization{c},
		FormInput:                               formInput{c},
		DownloadObject:                          downloadObject{c},
	}
}

func (c *Client) forward(ctx context.Context, svc, method string, data, configuration types.Data) (any, error) {
	return c.Call(ctx, svc, method, Request{Data: data, Configuration: configuration})
}

func (c *Client) target(ctx context.Context, svc, method string, data, configuration types.Data, id string) (any, error) {
	return c.Call(ctx, svc, method, Request{Data: data, Configuration: configuration, ID: id})
}

type catalogi struct{ c *Client }

func (s catalogi) CatalogiHandler(ctx context.Context, data, cfg types.Data) (any, error) {
	return s.c.forward(ctx, "catalogi", "catalogiHandler", data, cfg)
}

type componentenCatalogus struct{ c *Client }

func (s componentenCatalogus) GetApplications(ctx context.Context, data, cfg types.Data) (any, error) {
	return s.c.forward(ctx, "componentencatalogus", "getApplications", data, cfg)
}

func (s componentenCatalogus) GetApplication(ctx context.Context, id string, cfg types.Data) (any, error) {
	return s.c.target(ctx, "componentencatalogus", "getApplication", nil, cfg, id)
}

func (s componentenCatalogus) GetComponents(ctx context.Context, data, cfg types.Data) (any, error) {
	return s.c.forward(ctx, "componentencatalogus", "getComponents", data, cfg)
}

func (s componentenCatalogus) GetComponent(ctx context.Context, id string, cfg types.Data) (any, error) {
	return s.c.target(ctx, "componentencatalogus", "getComponent", nil, cfg, id)
}

func (s componentenCatalogus) ApplicationToGateway(ctx context.Context, data, cfg types.Data) (any, error) {
	return s.c.forward(ctx, "componentencatalogus", "applicationToGateway", data, cfg)
}

type developerOverheid struct{ c *Client }

func (s developerOverheid) GetComponents(ctx context.Context, data, cfg types.Data) (any, error) {
	return s.c.forward(ctx, "developeroverheid", "getComponents", data, cfg)
}

func (s developerOverheid) GetComponent(ctx context.Context, id string, cfg types.Data) (any, error) {
	return s.c.target(ctx, "developeroverheid", "getComponent", nil, cfg, id)
}

func (s developerOverheid) GetRepositories(ctx context.Context, data, cfg types.Data) (any, error) {
	return s.c.forward(ctx, "developeroverheid", "getRepositories", data, cfg)
}

func (s developerOverheid) GetRepository(ctx context.Context, id string, cfg types.Data) (any, error) {
	return s.c.target(ctx, "developeroverheid", "getRepository", nil, cfg, id)
}

type githubPubliccode struct{ c *Client }

func (s githubPubliccode) GetRepositories(ctx context.Context, data, cfg types.Data) (any, error) {
	return s.c.forward(ctx, "githubpubliccode", "getRepositories", data, cfg)
}

func (s githubPubliccode) GetRepository(ctx context.Context, id string, cfg types.Data) (any, error) {
	return s.c.target(ctx, "githubpubliccode", "getRepository", nil, cfg, id)
}

type githubAPI struct{ c *Client }

func (s githubAPI) GetOrganisations(ctx context.Context, data, cfg types.Data) (any, error) {
	return s.c.forward(ctx, "githubapi", "getOrganisations", data, cfg)
}

func (s githubAPI) GetOrganisation(ctx context.Context, id string, cfg types.Data) (any, error) {
	return s.c.target(ctx, "githubapi", "getOrganisation", nil, cfg, id)
}

type githubEvent struct{ c *Client }

func (s githubEvent) UpdateRepositoryWithEvent(ctx context.Context, data, cfg types.Data) (any, error) {
	return s.c.forward(ctx, "githubevent", "updateRepositoryWithEvent", data, cfg)
}

type rating struct{ c *Client }

func (s rating) EnrichComponentsWithRating(ctx context.Context, data, cfg types.Data, componentID string) (any, error) {
	return s.c.target(ctx, "rating", "enrichComponentsWithRating", data, cfg, componentID)
}

type enrichPubliccode struct{ c *Client }

func (s enrichPubliccode) EnrichPubliccode(ctx context.Context, data, cfg types.Data, repositoryID string) (any, error) {
	return s.c.target(ctx, "enrichpubliccode", "enrichPubliccode", data, cfg, repositoryID)
}

type enrichPubliccodeFromGithubURL struct{ c *Client }

func (s enrichPubliccodeFromGithubURL) EnrichFromGithubURL(ctx context.Context, data, cfg types.Data) (any, error) {
	return s.c.forward(ctx, "enrichpubliccodefromgithuburl", "enrichFromGithubUrl", data, cfg)
}

type enrichOrganization struct{ c *Client }

func (s enrichOrganization) EnrichOrganization(ctx context.Context, data, cfg types.Data, organizationID string) (any, error) {
	return s.c.target(ctx, "enrichorganization", "enrichOrganization", data, cfg, organizationID)
}

type findOrganization struct{ c *Client }

func (s findOrganization) FindOrganizations(ctx context.Context, data, cfg types.Data, repositoryID string) (any, error) {
	return s.c.target(ctx, "findorganizationthroughrepositories", "findOrganizations", data, cfg, repositoryID)
}

type findGithubRepository struct{ c *Client }

func (s findGithubRepository) FindRepositories(ctx context.Context, data, cfg types.Data, organizationID string) (any, error) {
	return s.c.target(ctx, "findgithubrepositorythroughorganization", "findRepositories", data, cfg, organizationID)
}

type federalization struct{ c *Client }

func (s federalization) SyncCatalogi(ctx context.Context, data, cfg types.Data) (any, error) {
	return s.c.forward(ctx, "federalization", "syncCatalogi", data, cfg)
}

func (s federalization) SyncCatalogus(ctx context.Context, id string, cfg types.Data) (any, error) {
	return s.c.target(ctx, "federalization", "syncCatalogus", nil, cfg, id)
}

func (s federalization) RegisterCatalogi(ctx context.Context, data, cfg types.Data) (any, error) {
	return s.c.forward(ctx, "federalization", "registerCatalogi", data, cfg)
}

type formInput struct{ c *Client }

func (s formInput) UpdatePublication(ctx context.Context, data, cfg types.Data) (any, error) {
	return s.c.forward(ctx, "forminput", "updatePublication", data, cfg)
}

type downloadObject struct{ c *Client }

func (s downloadObject) Download(ctx context.Context, data, cfg types.Data) (any, error) {
	return s.c.forward(ctx, "downloadobject", "download", data, cfg)
}
