// Package app encapsulates the application's dependencies, configuration,
// and lifecycle: logger, plugin registry, tenant store, and HTTP server.
package app
