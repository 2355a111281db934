// Package startup handles application initialization, configuration
// loading, and structured startup/shutdown logging.
package startup
