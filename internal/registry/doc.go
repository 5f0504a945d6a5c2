// Package registry provides the central "glue" for the integration system.
//
// The Registry stores the static plugin descriptors declared at process
// start together with the compiled Go action handlers they reference by
// name. During application startup the registry is populated and then
// validated to ensure the manifests and the Go code are perfectly in sync,
// preventing a wide class of runtime errors.
//
// At request time the registry is read-only: binding a tenant's
// configuration to a plugin's actions returns fresh closures and never
// writes to shared descriptor state, so concurrent tenants cannot observe
// each other's configuration.
package registry
