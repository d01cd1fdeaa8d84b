// Package production provides production integrations for the container:
// snapshot logging, channel publishing, metrics, tracing and visualization.
// Each adapter plugs into a Container through its hooks, its subscriber
// list or the core.Instrument interface.
package production
