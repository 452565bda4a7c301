package operation

import "github.com/pithecene-io/catalogi/schema"

func sourceProp(description, example string) schema.Property {
	return schema.Property{
		Type:        "string",
		Description: description,
		Example:     example,
		Required:    true,
		Reference:   gatewayEntity,
	}
}

func schemaProp(description, example string) schema.Property {
	return schema.Property{
		Type:        "string",
		Description: description,
		Example:     example,
		Required:    true,
		Reference:   gatewaySchema,
	}
}

func mappingProp(description, example string) schema.Property {
	return schema.Property{
		Type:        "string",
		Description: description,
		Example:     example,
		Required:    true,
		Reference:   gatewayMapping,
	}
}

func optional(p schema.Property) schema.Property {
	p.Required = false
	return p
}

// handlerSchema assembles a schema; required is derived from the properties
// flagged Required so the two can never drift apart.
func handlerSchema(base, description string, props map[string]schema.Property) schema.Schema {
	s := schema.Schema{
		ID:          HandlerRef(base),
		Schema:      schema.MetaSchema,
		Title:       base + "Handler",
		Description: description,
		Properties:  props,
	}
	for _, name := range s.PropertyNames() {
		if props[name].Required {
			s.Required = append(s.Required, name)
		}
	}
	return s
}

func catalogiHandlerSchema() schema.Schema {
	return handlerSchema("Catalogi", "Synchronises the catalogi known to this installation with their components.",
		map[string]schema.Property{
			"schema":          schemaProp("The catalogi schema", catalogiSchema),
			"componentSchema": schemaProp("The component schema", componentSchema),
			"location": optional(schema.Property{
				Type:        "string",
				Description: "The endpoint on a remote catalogus where components are listed",
				Example:     "/api/oc/components",
			}),
		})
}

func componentenCatalogusApplicationsSchema() schema.Schema {
	return handlerSchema("ComponentenCatalogusGetApplications", "Imports applications from the componentencatalogus.",
		map[string]schema.Property{
			"source":  sourceProp("The componentencatalogus source", componentenCatalogusSource),
			"schema":  schemaProp("The application schema", applicationSchema),
			"mapping": mappingProp("The mapping from componentencatalogus application to application", componentenCatalogusApplicationMapping),
			"componentsMapping": optional(mappingProp("The mapping used for the components of an application",
				componentenCatalogusComponentMapping)),
		})
}

func componentenCatalogusComponentsSchema() schema.Schema {
	return handlerSchema("ComponentenCatalogusGetComponents", "Imports components from the componentencatalogus.",
		map[string]schema.Property{
			"source":  sourceProp("The componentencatalogus source", componentenCatalogusSource),
			"schema":  schemaProp("The component schema", componentSchema),
			"mapping": mappingProp("The mapping from componentencatalogus component to component", componentenCatalogusComponentMapping),
		})
}

func applicationToGatewaySchema() schema.Schema {
	return handlerSchema("ComponentenCatalogusApplicationToGateway", "Stores an application received from the componentencatalogus as a gateway object.",
		map[string]schema.Property{
			"source":            sourceProp("The componentencatalogus source", componentenCatalogusSource),
			"applicationSchema": schemaProp("The application schema", applicationSchema),
			"componentSchema":   schemaProp("The component schema", componentSchema),
			"mapping":           mappingProp("The mapping from componentencatalogus application to application", componentenCatalogusApplicationMapping),
		})
}

func developerOverheidComponentsSchema() schema.Schema {
	return handlerSchema("DeveloperOverheidGetComponents", "Imports components from developer.overheid.nl.",
		map[string]schema.Property{
			"source":  sourceProp("The developer.overheid.nl source", developerOverheidSource),
			"schema":  schemaProp("The component schema", componentSchema),
			"mapping": mappingProp("The mapping from developer.overheid.nl component to component", developerOverheidComponentMapping),
			"endpoint": optional(schema.Property{
				Type:        "string",
				Description: "The path on the source that lists components",
				Example:     "/apis",
			}),
		})
}

func developerOverheidRepositoriesSchema() schema.Schema {
	return handlerSchema("DeveloperOverheidGetRepositories", "Imports repositories from developer.overheid.nl.",
		map[string]schema.Property{
			"source":  sourceProp("The developer.overheid.nl source", developerOverheidSource),
			"schema":  schemaProp("The repository schema", repositorySchema),
			"mapping": mappingProp("The mapping from developer.overheid.nl repository to repository", developerOverheidRepositoryMapping),
			"endpoint": optional(schema.Property{
				Type:        "string",
				Description: "The path on the source that lists repositories",
				Example:     "/repositories",
			}),
		})
}

func publiccodeRepositoriesSchema() schema.Schema {
	return handlerSchema("GithubApiGetPubliccodeRepositories", "Finds repositories on GitHub that carry a publiccode.yml.",
		map[string]schema.Property{
			"source":            sourceProp("The GitHub API source", githubAPISource),
			"usercontentSource": sourceProp("The raw.githubusercontent.com source", githubUsercontentSource),
			"repositorySchema":  schemaProp("The repository schema", repositorySchema),
			"repositoryMapping": mappingProp("The mapping from GitHub repository to repository", githubRepositoryMapping),
			"query": optional(schema.Property{
				Type:        "string",
				Description: "The code search query used to find publiccode files",
				Example:     "path:/ filename:publiccode extension:yml",
			}),
		})
}

func githubOrganisationSchema() schema.Schema {
	return handlerSchema("GithubApiGetOrganisation", "Imports organisations from the GitHub API.",
		map[string]schema.Property{
			"source":              sourceProp("The GitHub API source", githubAPISource),
			"organisationSchema":  schemaProp("The organisation schema", organisationSchema),
			"organisationMapping": mappingProp("The mapping from GitHub organisation to organisation", githubOrganisationMapping),
		})
}

func githubEventSchema() schema.Schema {
	return handlerSchema("GithubEvent", "Applies a GitHub webhook event to the stored repository.",
		map[string]schema.Property{
			"source":            sourceProp("The GitHub API source", githubAPISource),
			"repositorySchema":  schemaProp("The repository schema", repositorySchema),
			"repositoryMapping": mappingProp("The mapping from GitHub repository to repository", githubRepositoryMapping),
			"eventMapping":      optional(mappingProp("The mapping from GitHub event to repository", githubEventMapping)),
		})
}

func ratingSchemaFor() schema.Schema {
	return handlerSchema("Rating", "Rates components on the completeness of their metadata.",
		map[string]schema.Property{
			"componentSchema": schemaProp("The component schema", componentSchema),
			"ratingSchema":    schemaProp("The rating schema", ratingSchema),
		})
}

func enrichPubliccodeSchema() schema.Schema {
	return handlerSchema("EnrichPubliccode", "Enriches repositories with the contents of their publiccode.yml.",
		map[string]schema.Property{
			"source":             sourceProp("The GitHub API source", githubAPISource),
			"usercontentSource":  sourceProp("The raw.githubusercontent.com source", githubUsercontentSource),
			"repositorySchema":   schemaProp("The repository schema", repositorySchema),
			"componentSchema":    schemaProp("The component schema", componentSchema),
			"organisationSchema": optional(schemaProp("The organisation schema", organisationSchema)),
			"publiccodeMapping":  mappingProp("The mapping from publiccode.yml to component", githubPubliccodeMapping),
		})
}

func enrichPubliccodeFromURLSchema() schema.Schema {
	return handlerSchema("EnrichPubliccodeFromGithubUrl", "Enriches the repository found at a GitHub URL with its publiccode.yml.",
		map[string]schema.Property{
			"source":            sourceProp("The GitHub API source", githubAPISource),
			"usercontentSource": sourceProp("The raw.githubusercontent.com source", githubUsercontentSource),
			"repositorySchema":  schemaProp("The repository schema", repositorySchema),
			"publiccodeMapping": mappingProp("The mapping from publiccode.yml to component", githubPubliccodeMapping),
		})
}

func enrichOrganizationSchema() schema.Schema {
	return handlerSchema("EnrichOrganization", "Enriches organisations with their GitHub details and opencatalogi.yaml.",
		map[string]schema.Property{
			"githubSource":        sourceProp("The GitHub API source", githubAPISource),
			"usercontentSource":   sourceProp("The raw.githubusercontent.com source", githubUsercontentSource),
			"organisationSchema":  schemaProp("The organisation schema", organisationSchema),
			"organisationMapping": mappingProp("The mapping from GitHub organisation to organisation", githubOrganisationMapping),
		})
}

func findOrganizationSchema() schema.Schema {
	return handlerSchema("FindOrganizationThroughRepositories", "Finds the organisations that own stored repositories.",
		map[string]schema.Property{
			"githubSource":        sourceProp("The GitHub API source", githubAPISource),
			"repositorySchema":    schemaProp("The repository schema", repositorySchema),
			"organisationSchema":  schemaProp("The organisation schema", organisationSchema),
			"organisationMapping": mappingProp("The mapping from GitHub organisation to organisation", githubOrganisationMapping),
		})
}

func findGithubRepositorySchema() schema.Schema {
	return handlerSchema("FindGithubRepositoryThroughOrganization", "Finds the repositories of stored organisations.",
		map[string]schema.Property{
			"githubSource":       sourceProp("The GitHub API source", githubAPISource),
			"usercontentSource":  sourceProp("The raw.githubusercontent.com source", githubUsercontentSource),
			"organisationSchema": schemaProp("The organisation schema", organisationSchema),
			"repositorySchema":   schemaProp("The repository schema", repositorySchema),
			"repositoryMapping":  mappingProp("The mapping from GitHub repository to repository", githubRepositoryMapping),
		})
}

func federalizationSyncSchema() schema.Schema {
	return handlerSchema("FederalizationSync", "Copies components, organisations and applications from known catalogi.",
		map[string]schema.Property{
			"catalogiSchema":     schemaProp("The catalogi schema", catalogiSchema),
			"componentSchema":    schemaProp("The component schema", componentSchema),
			"organisationSchema": schemaProp("The organisation schema", organisationSchema),
			"applicationSchema":  schemaProp("The application schema", applicationSchema),
			"location": optional(schema.Property{
				Type:        "string",
				Description: "The endpoint on a remote catalogus where objects are listed",
				Example:     "/api/oc/search",
			}),
		})
}

func federalizationRegisterSchema() schema.Schema {
	return handlerSchema("FederalizationRegister", "Registers this installation with the catalogi it knows about.",
		map[string]schema.Property{
			"catalogiSchema": schemaProp("The catalogi schema", catalogiSchema),
			"location": optional(schema.Property{
				Type:        "string",
				Description: "The endpoint on a remote catalogus where catalogi are registered",
				Example:     "/api/oc/catalogi",
			}),
		})
}

func formInputSchema() schema.Schema {
	return handlerSchema("FormInput", "Turns a submitted publication form into a publication update.",
		map[string]schema.Property{
			"publicationSchema": schemaProp("The publication schema", publicationSchema),
			"mapping":           mappingProp("The mapping from form input to publication", formInputMapping),
		})
}

func downloadObjectSchema() schema.Schema {
	return handlerSchema("DownloadObject", "Renders a stored object for download.",
		map[string]schema.Property{
			"schema": schemaProp("The schema of the object to render", componentSchema),
			"template": optional(schema.Property{
				Type:        "string",
				Description: "The template used to render the object",
				Example:     "https://opencatalogi.nl/oc.componentDownload.template.json",
			}),
		})
}
