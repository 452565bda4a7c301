package operation

import (
	"context"
	"sync"

	"github.com/pithecene-io/catalogi/service"
	"github.com/pithecene-io/catalogi/types"
)

type call struct {
	Method string
	Data   types.Data
	Config types.Data
	ID     string
}

// recorder implements every service interface and records each call.
type recorder struct {
	mu     sync.Mutex
	calls  []call
	result any
	err    error
}

func (r *recorder) record(method string, data, cfg types.Data, id string) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call{Method: method, Data: data, Config: cfg, ID: id})
	return r.result, r.err
}

func (r *recorder) Calls() []call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]call(nil), r.calls...)
}

func (r *recorder) set() service.Set {
	return service.Set{
		Catalogi:                                r,
		ComponentenCatalogus:                    r,
		DeveloperOverheid:                       r,
		GithubPubliccode:                        r,
		GithubAPI:                               r,
		GithubEvent:                             r,
		Rating:                                  r,
		EnrichPubliccode:                        r,
		EnrichPubliccodeFromGithubURL:           r,
		EnrichOrganization:                      r,
		FindOrganizationThroughRepositories:     r,
		FindGithubRepositoryThroughOrganization: r,
		Federalization:                          r,
		FormInput:                               r,
		DownloadObject:                          r,
	}
}

func (r *recorder) CatalogiHandler(_ context.Context, data, cfg types.Data) (any, error) {
	return r.record("CatalogiHandler", data, cfg, "")
}

func (r *recorder) GetApplications(_ context.Context, data, cfg types.Data) (any, error) {
	return r.record("GetApplications", data, cfg, "")
}

func (r *recorder) GetApplication(_ context.Context, id string, cfg types.Data) (any, error) {
	return r.record("GetApplication", nil, cfg, id)
}

func (r *recorder) GetComponents(_ context.Context, data, cfg types.Data) (any, error) {
	return r.record("GetComponents", data, cfg, "")
}

func (r *recorder) GetComponent(_ context.Context, id string, cfg types.Data) (any, error) {
	return r.record("GetComponent", nil, cfg, id)
}

func (r *recorder) ApplicationToGateway(_ context.Context, data, cfg types.Data) (any, error) {
	return r.record("ApplicationToGateway", data, cfg, "")
}

func (r *recorder) GetRepositories(_ context.Context, data, cfg types.Data) (any, error) {
	return r.record("GetRepositories", data, cfg, "")
}

func (r *recorder) GetRepository(_ context.Context, id string, cfg types.Data) (any, error) {
	return r.record("GetRepository", nil, cfg, id)
}

func (r *recorder) GetOrganisations(_ context.Context, data, cfg types.Data) (any, error) {
	return r.record("GetOrganisations", data, cfg, "")
}

func (r *recorder) GetOrganisation(_ context.Context, id string, cfg types.Data) (any, error) {
	return r.record("GetOrganisation", nil, cfg, id)
}

func (r *recorder) UpdateRepositoryWithEvent(_ context.Context, data, cfg types.Data) (any, error) {
	return r.record("UpdateRepositoryWithEvent", data, cfg, "")
}

func (r *recorder) EnrichComponentsWithRating(_ context.Context, data, cfg types.Data, id string) (any, error) {
	return r.record("EnrichComponentsWithRating", data, cfg, id)
}

func (r *recorder) EnrichPubliccode(_ context.Context, data, cfg types.Data, id string) (any, error) {
	return r.record("EnrichPubliccode", data, cfg, id)
}

func (r *recorder) EnrichFromGithubURL(_ context.Context, data, cfg types.Data) (any, error) {
	return r.record("EnrichFromGithubURL", data, cfg, "")
}

func (r *recorder) EnrichOrganization(_ context.Context, data, cfg types.Data, id string) (any, error) {
	return r.record("EnrichOrganization", data, cfg, id)
}

func (r *recorder) FindOrganizations(_ context.Context, data, cfg types.Data, id string) (any, error) {
	return r.record("FindOrganizations", data, cfg, id)
}

func (r *recorder) FindRepositories(_ context.Context, data, cfg types.Data, id string) (any, error) {
	return r.record("FindRepositories", data, cfg, id)
}

func (r *recorder) SyncCatalogi(_ context.Context, data, cfg types.Data) (any, error) {
	return r.record("SyncCatalogi", data, cfg, "")
}

func (r *recorder) SyncCatalogus(_ context.Context, id string, cfg types.Data) (any, error) {
	return r.record("SyncCatalogus", nil, cfg, id)
}

func (r *recorder) RegisterCatalogi(_ context.Context, data, cfg types.Data) (any, error) {
	return r.record("RegisterCatalogi", data, cfg, "")
}

func (r *recorder) UpdatePublication(_ context.Context, data, cfg types.Data) (any, error) {
	return r.record("UpdatePublication", data, cfg, "")
}

func (r *recorder) Download(_ context.Context, data, cfg types.Data) (any, error) {
	return r.record("Download", data, cfg, "")
}
