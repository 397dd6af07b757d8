// Package plangraph renders a resolved frame plan as a Graphviz digraph.
//
// Each pass becomes a cluster holding its steps in order; consecutive steps
// are chained with edges, across pass boundaries too. Nodes no pass could
// place are collected in a separate cluster and drawn dashed.
package plangraph
