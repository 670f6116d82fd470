// Package fixtures generates small topologies and trace snippets for tests
// across the module, adapted from the functional-options style of the
// builder package (BuilderOption/builderConfig) but targeting
// topology.Topology and trace-file text instead of *core.Graph.
package fixtures
