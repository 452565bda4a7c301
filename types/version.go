package types

// Version is the canonical project version.
// The CLI, the HTTP trigger surface and the completion event payload all
// report this version.
const Version = "0.3.0"

// ContractVersion is stamped on every completion event and journal record.
// Lockstep with Version.
const ContractVersion = Version

// PluginPackage is the resource registry plugin identifier owning every
// configuration record shipped with this bundle.
const PluginPackage = "open-catalogi/open-catalogi-bundle"
