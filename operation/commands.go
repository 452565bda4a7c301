package operation

import (
	"context"
	"errors"
	"fmt"

	"github.com/pithecene-io/catalogi/service"
	"github.com/pithecene-io/catalogi/types"
)

// ErrNoTarget is returned when an id is passed to a command without a target option.
var ErrNoTarget = errors.New("command does not accept a target")

// Target is the optional option that narrows a command to one object.
type Target struct {
	// Flag is the long option name, e.g. "component".
	Flag string
	// Alias is the single-letter short option, e.g. "c".
	Alias string
	// Entity names the targeted object in help text.
	Entity string
}

// AllFunc runs a command against the full collection.
type AllFunc func(ctx context.Context, configuration types.Data) (any, error)

// OneFunc runs a command against a single object.
type OneFunc func(ctx context.Context, id string, configuration types.Data) (any, error)

// Command is a catalog command such as "opencatalogi:developeroverheid:components".
type Command struct {
	Name  string
	Usage string
	Help  string
	// Action is the reference of the action record holding the command's
	// configuration.
	Action string
	// Operation names the operation sharing the command's configuration schema.
	Operation string
	// Target is nil for commands that always run against everything.
	Target *Target
	All    AllFunc
	One    OneFunc
}

// Execute calls All when id is empty and One otherwise, exactly once.
// ok reports whether the result counts as success.
func (c Command) Execute(ctx context.Context, configuration types.Data, id string) (result any, ok bool, err error) {
	if id == "" {
		result, err = c.All(ctx, configuration)
	} else {
		if c.Target == nil || c.One == nil {
			return nil, false, fmt.Errorf("%s: %w", c.Name, ErrNoTarget)
		}
		result, err = c.One(ctx, id, configuration)
	}
	if err != nil {
		return result, false, err
	}
	return result, Succeeded(result), nil
}

// all adapts a (data, configuration) service method to an AllFunc with empty data.
func all(fn RunFunc) AllFunc {
	return func(ctx context.Context, cfg types.Data) (any, error) {
		return fn(ctx, types.Data{}, cfg)
	}
}

type scopedFunc func(ctx context.Context, data, configuration types.Data, id string) (any, error)

// scoped adapts a service method taking an optional id to both an AllFunc and
// a OneFunc.
func scoped(fn scopedFunc) (AllFunc, OneFunc) {
	return func(ctx context.Context, cfg types.Data) (any, error) {
			return fn(ctx, types.Data{}, cfg, "")
		}, func(ctx context.Context, id string, cfg types.Data) (any, error) {
			return fn(ctx, types.Data{}, cfg, id)
		}
}

var (
	applicationTarget  = &Target{Flag: "application", Alias: "a", Entity: "application"}
	componentTarget    = &Target{Flag: "component", Alias: "c", Entity: "component"}
	repositoryTarget   = &Target{Flag: "repository", Alias: "r", Entity: "repository"}
	organisationTarget = &Target{Flag: "organisation", Alias: "o", Entity: "organisation"}
	organizationTarget = &Target{Flag: "organization", Alias: "o", Entity: "organization"}
	catalogusTarget    = &Target{Flag: "catalogus", Alias: "c", Entity: "catalogus"}
)

// Commands returns the bundle's catalog commands bound to set.
// Commands whose service is nil in set are left out.
func Commands(set service.Set) []Command {
	var cmds []Command

	if s := set.ComponentenCatalogus; s != nil {
		cmds = append(cmds,
			Command{
				Name:      "opencatalogi:componentencatalogus:applications",
				Usage:     "Get applications through the componentencatalogus",
				Help:      "Imports all applications from componentencatalogus.commonground.nl, or a single one with --application.",
				Action:    ActionRef("ComponentenCatalogusGetApplications"),
				Operation: "componentencatalogus.applications",
				Target:    applicationTarget,
				All:       all(s.GetApplications),
				One:       s.GetApplication,
			},
			Command{
				Name:      "opencatalogi:componentencatalogus:components",
				Usage:     "Get components through the componentencatalogus",
				Help:      "Imports all components from componentencatalogus.commonground.nl, or a single one with --component.",
				Action:    ActionRef("ComponentenCatalogusGetComponents"),
				Operation: "componentencatalogus.components",
				Target:    componentTarget,
				All:       all(s.GetComponents),
				One:       s.GetComponent,
			},
		)
	}
	if s := set.DeveloperOverheid; s != nil {
		cmds = append(cmds,
			Command{
				Name:      "opencatalogi:developeroverheid:components",
				Usage:     "Get components through developer.overheid.nl",
				Help:      "Imports all components from developer.overheid.nl, or a single one with --component.",
				Action:    ActionRef("DeveloperOverheidGetComponents"),
				Operation: "developeroverheid.components",
				Target:    componentTarget,
				All:       all(s.GetComponents),
				One:       s.GetComponent,
			},
			Command{
				Name:      "opencatalogi:developeroverheid:repositories",
				Usage:     "Get repositories through developer.overheid.nl",
				Help:      "Imports all repositories from developer.overheid.nl, or a single one with --repository.",
				Action:    ActionRef("DeveloperOverheidGetRepositories"),
				Operation: "developeroverheid.repositories",
				Target:    repositoryTarget,
				All:       all(s.GetRepositories),
				One:       s.GetRepository,
			},
		)
	}
	if s := set.GithubPubliccode; s != nil {
		cmds = append(cmds, Command{
			Name:      "opencatalogi:github:repositories",
			Usage:     "Find repositories containing publiccode",
			Help:      "Searches GitHub for repositories carrying a publiccode.yml, or imports a single one with --repository.",
			Action:    ActionRef("GithubApiGetPubliccodeRepositories"),
			Operation: "github.publiccode-repositories",
			Target:    repositoryTarget,
			All:       all(s.GetRepositories),
			One:       s.GetRepository,
		})
	}
	if s := set.GithubAPI; s != nil {
		cmds = append(cmds, Command{
			Name:      "opencatalogi:github:organisation",
			Usage:     "Get organisations through the GitHub API",
			Help:      "Imports all organisations from GitHub, or a single one with --organisation.",
			Action:    ActionRef("GithubApiGetOrganisation"),
			Operation: "github.organisation",
			Target:    organisationTarget,
			All:       all(s.GetOrganisations),
			One:       s.GetOrganisation,
		})
	}
	if s := set.Rating; s != nil {
		a, o := scoped(s.EnrichComponentsWithRating)
		cmds = append(cmds, Command{
			Name:      "opencatalogi:rating:components",
			Usage:     "Rate components",
			Help:      "Rates all components, or a single one with --component.",
			Action:    ActionRef("Rating"),
			Operation: "rating",
			Target:    componentTarget,
			All:       a,
			One:       o,
		})
	}
	if s := set.EnrichPubliccode; s != nil {
		a, o := scoped(s.EnrichPubliccode)
		cmds = append(cmds, Command{
			Name:      "opencatalogi:enrichpubliccode:execute",
			Usage:     "Enrich repositories with their publiccode",
			Help:      "Enriches all repositories with their publiccode.yml, or a single one with --repository.",
			Action:    ActionRef("EnrichPubliccode"),
			Operation: "enrich.publiccode",
			Target:    repositoryTarget,
			All:       a,
			One:       o,
		})
	}
	if s := set.EnrichOrganization; s != nil {
		a, o := scoped(s.EnrichOrganization)
		cmds = append(cmds, Command{
			Name:      "opencatalogi:enrichorganization:execute",
			Usage:     "Enrich organizations",
			Help:      "Enriches all organizations with their GitHub details, or a single one with --organization.",
			Action:    ActionRef("EnrichOrganization"),
			Operation: "enrich.organization",
			Target:    organizationTarget,
			All:       a,
			One:       o,
		})
	}
	if s := set.FindOrganizationThroughRepositories; s != nil {
		a, o := scoped(s.FindOrganizations)
		cmds = append(cmds, Command{
			Name:      "opencatalogi:findorganizationthroughrepositories:execute",
			Usage:     "Find organizations through repositories",
			Help:      "Finds the organizations owning all repositories, or a single one with --repository.",
			Action:    ActionRef("FindOrganizationThroughRepositories"),
			Operation: "find.organization-through-repositories",
			Target:    repositoryTarget,
			All:       a,
			One:       o,
		})
	}
	if s := set.FindGithubRepositoryThroughOrganization; s != nil {
		a, o := scoped(s.FindRepositories)
		cmds = append(cmds, Command{
			Name:      "opencatalogi:findgithubrepositorythroughorganization:execute",
			Usage:     "Find repositories through organizations",
			Help:      "Finds the GitHub repositories of all organizations, or of a single one with --organization.",
			Action:    ActionRef("FindGithubRepositoryThroughOrganization"),
			Operation: "find.github-repository-through-organization",
			Target:    organizationTarget,
			All:       a,
			One:       o,
		})
	}
	if s := set.Federalization; s != nil {
		cmds = append(cmds,
			Command{
				Name:      "opencatalogi:federalization:sync",
				Usage:     "Synchronise with known catalogi",
				Help:      "Copies objects from every known catalogus, or from a single one with --catalogus.",
				Action:    ActionRef("FederalizationSync"),
				Operation: "federalization.sync",
				Target:    catalogusTarget,
				All:       all(s.SyncCatalogi),
				One:       s.SyncCatalogus,
			},
			Command{
				Name:      "opencatalogi:federalization:register",
				Usage:     "Register with known catalogi",
				Help:      "Announces this installation to every catalogus it knows about.",
				Action:    ActionRef("FederalizationRegister"),
				Operation: "federalization.register",
				All:       all(s.RegisterCatalogi),
			},
		)
	}
	return cmds
}
