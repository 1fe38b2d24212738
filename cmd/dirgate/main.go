// Dirgate is a read-only directory query gateway exposed over the Model
// Context Protocol.
//
// It serves a catalog of directory tools (users, groups, applications,
// devices, and administrative reports) backed by the Microsoft Graph API,
// providing:
//   - Parameter validation and OData sanitization before any network call
//   - A closed error taxonomy: every failure reaches the client classified
//   - Retrying with exponential backoff and Retry-After support
//   - Structured logging and Prometheus metrics
//
// Usage:
//
//	# Serve the tool catalog on stdio with default configuration
//	dirgate run
//
//	# Serve with a custom configuration file
//	dirgate run --config /etc/dirgate/config.yaml
//
//	# Validate a configuration file without connecting
//	dirgate validate --config /etc/dirgate/config.yaml
//
//	# Show version information
//	dirgate version
package main

func main() {
	Execute()
}
