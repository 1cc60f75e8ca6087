// Package app wires the application together: configuration, the
// structured logger, the dataset repository and services, the chi router
// with its middleware chain, and the HTTP server lifecycle including
// graceful shutdown.
package app
