package operation

// Reference prefixes used by the bundle's handlers and action records.
const (
	handlerPrefix = "https://opencatalogi.nl/ActionHandler/"
	actionPrefix  = "https://opencatalogi.nl/action/oc."

	gatewayEntity  = "https://commongateway.nl/commongateway.gateway.entity.json"
	gatewaySchema  = "https://commongateway.nl/commongateway.entity.entity.json"
	gatewayMapping = "https://commongateway.nl/commongateway.mapping.entity.json"
)

// Sources.
const (
	developerOverheidSource    = "https://opencatalogi.nl/source/oc.developerOverheid.source.json"
	componentenCatalogusSource = "https://opencatalogi.nl/source/oc.componentencatalogus.source.json"
	githubAPISource            = "https://opencatalogi.nl/source/oc.GitHubAPI.source.json"
	githubUsercontentSource    = "https://opencatalogi.nl/source/oc.GitHubusercontent.source.json"
)

// Schemas.
const (
	componentSchema    = "https://opencatalogi.nl/oc.component.schema.json"
	applicationSchema  = "https://opencatalogi.nl/oc.application.schema.json"
	repositorySchema   = "https://opencatalogi.nl/oc.repository.schema.json"
	organisationSchema = "https://opencatalogi.nl/oc.organisation.schema.json"
	catalogiSchema     = "https://opencatalogi.nl/oc.catalogi.schema.json"
	ratingSchema       = "https://opencatalogi.nl/oc.rating.schema.json"
	publicationSchema  = "https://opencatalogi.nl/oc.publication.schema.json"
)

// Mappings.
const (
	developerOverheidComponentMapping      = "https://developer.overheid.nl/oc.developerOverheidComponent.mapping.json"
	developerOverheidRepositoryMapping     = "https://developer.overheid.nl/oc.developerOverheidRepository.mapping.json"
	componentenCatalogusApplicationMapping = "https://componentencatalogus.commonground.nl/oc.componentenCatalogusApplication.mapping.json"
	componentenCatalogusComponentMapping   = "https://componentencatalogus.commonground.nl/oc.componentenCatalogusComponent.mapping.json"
	githubRepositoryMapping                = "https://api.github.com/oc.githubRepository.mapping.json"
	githubOrganisationMapping              = "https://api.github.com/oc.githubOrganisation.mapping.json"
	githubPubliccodeMapping                = "https://api.github.com/oc.githubPubliccodeYmlToGateway.mapping.json"
	githubEventMapping                     = "https://api.github.com/oc.githubEvent.mapping.json"
	formInputMapping                       = "https://opencatalogi.nl/oc.formInputToPublication.mapping.json"
)

// HandlerRef returns the schema $id of the handler with the given base name.
func HandlerRef(base string) string {
	return handlerPrefix + base + "Handler.ActionHandler.json"
}

// ActionRef returns the reference of the default action record for base.
func ActionRef(base string) string {
	return actionPrefix + base + "Action.action.json"
}
