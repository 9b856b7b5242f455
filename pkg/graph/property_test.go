package graph

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestResolveInvariants checks that no edge list can make Resolve keep an
// edge with a missing endpoint, and that nothing is lost silently
func TestResolveInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	ids := gen.OneConstOf("a", "b", "c", "d", "e", "f")

	properties.Property("kept edges always resolve", prop.ForAll(
		func(nodeIDs []string, from, to []string) bool {
			data := Data{}
			for _, id := range nodeIDs {
				data.Nodes = append(data.Nodes, Node{ID: id, Type: NodeMessage})
			}
			n := min(len(from), len(to))
			for i := 0; i < n; i++ {
				data.Edges = append(data.Edges, Edge{From: from[i], To: to[i], Type: EdgeNeutral})
			}

			r := Resolve(data)
			for _, e := range r.Edges {
				if _, ok := r.Index[e.From]; !ok {
					return false
				}
				if _, ok := r.Index[e.To]; !ok {
					return false
				}
			}
			return len(r.Edges)+r.Dropped == len(data.Edges)
		},
		gen.SliceOf(ids),
		gen.SliceOf(ids),
		gen.SliceOf(ids),
	))

	properties.TestingRun(t)
}
