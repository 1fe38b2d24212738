// Package tools exposes the directory query catalog over the Model Context
// Protocol.
//
// Each tool maps 1:1 onto an operation of the directory service. Handlers
// decode the raw JSON argument bag into a map and pass the values through
// untyped; validation and defaulting happen in the odata and directory
// layers, so a tool handler contains no logic beyond routing.
//
// Results are text content: successful list operations return a count/value
// page, single objects are returned as-is. Failures never become protocol
// errors: every error is classified and serialized into an error result
// with its kind and message intact, so a calling client can distinguish a
// bad parameter from a throttled request from a missing resource.
package tools
