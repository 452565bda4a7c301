package operation

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pithecene-io/catalogi/schema"
	"github.com/pithecene-io/catalogi/service"
	"github.com/pithecene-io/catalogi/types"
)

func op(name, base string, build func() schema.Schema, run RunFunc) Operation {
	return Operation{
		Name:      name,
		Reference: HandlerRef(base),
		Action:    ActionRef(base),
		Schema:    build,
		Run:       run,
	}
}

// Catalog returns the bundle's operations bound to set.
// Operations whose service is nil in set are left out.
func Catalog(set service.Set) []Operation {
	var ops []Operation

	if s := set.Catalogi; s != nil {
		ops = append(ops, op("catalogi", "Catalogi", catalogiHandlerSchema, s.CatalogiHandler))
	}
	if s := set.ComponentenCatalogus; s != nil {
		ops = append(ops,
			op("componentencatalogus.applications", "ComponentenCatalogusGetApplications",
				componentenCatalogusApplicationsSchema, s.GetApplications),
			op("componentencatalogus.components", "ComponentenCatalogusGetComponents",
				componentenCatalogusComponentsSchema, s.GetComponents),
			op("componentencatalogus.application-to-gateway", "ComponentenCatalogusApplicationToGateway",
				applicationToGatewaySchema, s.ApplicationToGateway),
		)
	}
	if s := set.DeveloperOverheid; s != nil {
		ops = append(ops,
			op("developeroverheid.components", "DeveloperOverheidGetComponents",
				developerOverheidComponentsSchema, s.GetComponents),
			op("developeroverheid.repositories", "DeveloperOverheidGetRepositories",
				developerOverheidRepositoriesSchema, s.GetRepositories),
		)
	}
	if s := set.GithubPubliccode; s != nil {
		ops = append(ops, op("github.publiccode-repositories", "GithubApiGetPubliccodeRepositories",
			publiccodeRepositoriesSchema, s.GetRepositories))
	}
	if s := set.GithubAPI; s != nil {
		ops = append(ops, op("github.organisation", "GithubApiGetOrganisation",
			githubOrganisationSchema, s.GetOrganisations))
	}
	if s := set.GithubEvent; s != nil {
		ops = append(ops, op("github.event", "GithubEvent", githubEventSchema, s.UpdateRepositoryWithEvent))
	}
	if s := set.Rating; s != nil {
		ops = append(ops, op("rating", "Rating", ratingSchemaFor,
			func(ctx context.Context, data, cfg types.Data) (any, error) {
				return s.EnrichComponentsWithRating(ctx, data, cfg, responseID(data))
			}))
	}
	if s := set.EnrichPubliccode; s != nil {
		ops = append(ops, op("enrich.publiccode", "EnrichPubliccode", enrichPubliccodeSchema,
			func(ctx context.Context, data, cfg types.Data) (any, error) {
				return s.EnrichPubliccode(ctx, data, cfg, "")
			}))
	}
	if s := set.EnrichPubliccodeFromGithubURL; s != nil {
		ops = append(ops, op("enrich.publiccode-from-url", "EnrichPubliccodeFromGithubUrl",
			enrichPubliccodeFromURLSchema, s.EnrichFromGithubURL))
	}
	if s := set.EnrichOrganization; s != nil {
		ops = append(ops, op("enrich.organization", "EnrichOrganization", enrichOrganizationSchema,
			func(ctx context.Context, data, cfg types.Data) (any, error) {
				return s.EnrichOrganization(ctx, data, cfg, "")
			}))
	}
	if s := set.FindOrganizationThroughRepositories; s != nil {
		ops = append(ops, op("find.organization-through-repositories", "FindOrganizationThroughRepositories",
			findOrganizationSchema, func(ctx context.Context, data, cfg types.Data) (any, error) {
				return s.FindOrganizations(ctx, data, cfg, "")
			}))
	}
	if s := set.FindGithubRepositoryThroughOrganization; s != nil {
		ops = append(ops, op("find.github-repository-through-organization", "FindGithubRepositoryThroughOrganization",
			findGithubRepositorySchema, func(ctx context.Context, data, cfg types.Data) (any, error) {
				return s.FindRepositories(ctx, data, cfg, "")
			}))
	}
	if s := set.Federalization; s != nil {
		ops = append(ops,
			op("federalization.sync", "FederalizationSync", federalizationSyncSchema, s.SyncCatalogi),
			op("federalization.register", "FederalizationRegister", federalizationRegisterSchema, s.RegisterCatalogi),
		)
	}
	if s := set.FormInput; s != nil {
		ops = append(ops, op("form-input", "FormInput", formInputSchema, s.UpdatePublication))
	}
	if s := set.DownloadObject; s != nil {
		ops = append(ops, op("download-object", "DownloadObject", downloadObjectSchema, s.Download))
	}
	return ops
}

// responseID returns data["response"]["id"] as a string. Numeric ids, as
// decoded from JSON or msgpack, are formatted without exponent.
func responseID(data types.Data) string {
	resp, ok := data["response"].(map[string]any)
	if !ok {
		return ""
	}
	switch id := resp["id"].(type) {
	case string:
		return id
	case json.Number:
		return id.String()
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(id), 'f', -1, 32)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(id)
	default:
		return ""
	}
}
