// Package directory implements the query builders for the directory
// entities (users, groups, applications, devices) and the administrative
// report queries.
//
// The five structurally identical per-entity builders are factored into one
// generic Service configured by an entity metadata table: collection path,
// searchable fields, inactivity timestamp field, and relationship sub-paths.
// Every operation follows the same contract: validate parameters (failures
// surface before any network call), compose a graph.Request, execute it
// through the retry engine, and unwrap the page envelope. Entity payloads
// are opaque json.RawMessage values passed through unmodified.
package directory
