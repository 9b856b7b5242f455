package graph

// NodeType classifies a conversation node
type NodeType string

const (
	NodeParticipant NodeType = "participant"
	NodeTopic       NodeType = "topic"
	NodeMessage     NodeType = "message"
)

// Valid reports whether t is one of the known node types
func (t NodeType) Valid() bool {
	switch t {
	case NodeParticipant, NodeTopic, NodeMessage:
		return true
	}
	return false
}

// EdgeType is the relation kind carried by an edge
type EdgeType string

const (
	EdgeAuthored        EdgeType = "authored"
	EdgeMentions        EdgeType = "mentions"
	EdgeDiscusses       EdgeType = "discusses"
	EdgeReferences      EdgeType = "references"
	EdgeRequestsSource  EdgeType = "requestsSource"
	EdgeProvidesSource  EdgeType = "providesSource"
	EdgeIntroduces      EdgeType = "introduces"
	EdgeElaborates      EdgeType = "elaborates"
	EdgeCritiques       EdgeType = "critiques"
	EdgeDismisses       EdgeType = "dismisses"
	EdgeSupportsImpact  EdgeType = "supportsImpact"
	EdgeAgrees          EdgeType = "agrees"
	EdgeNeutral         EdgeType = "neutral"
	EdgeConcludes       EdgeType = "concludes"
	EdgeDisagrees       EdgeType = "disagrees"
	EdgeCounterArgument EdgeType = "counterArgument"
	EdgeFactCheck       EdgeType = "factCheck"
	EdgeProvidesInfo    EdgeType = "providesInfo"
	EdgeAddsInfo        EdgeType = "addsInfo"
	EdgeCorrects        EdgeType = "corrects"
	EdgeSummarizes      EdgeType = "summarizes"
)

var edgeTypes = []EdgeType{
	EdgeAuthored, EdgeMentions, EdgeDiscusses, EdgeReferences, EdgeRequestsSource,
	EdgeProvidesSource, EdgeIntroduces, EdgeElaborates, EdgeCritiques, EdgeDismisses,
	EdgeSupportsImpact, EdgeAgrees, EdgeNeutral, EdgeConcludes, EdgeDisagrees,
	EdgeCounterArgument, EdgeFactCheck, EdgeProvidesInfo, EdgeAddsInfo, EdgeCorrects,
	EdgeSummarizes,
}

// AllEdgeTypes returns every known relation kind in declaration order
func AllEdgeTypes() []EdgeType {
	out := make([]EdgeType, len(edgeTypes))
	copy(out, edgeTypes)
	return out
}

// Valid reports whether t is one of the known relation kinds
func (t EdgeType) Valid() bool {
	for _, known := range edgeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Node is a participant, topic or message in the conversation
type Node struct {
	ID      string   `json:"id" validate:"required"`
	Type    NodeType `json:"type" validate:"required,oneof=participant topic message"`
	Content string   `json:"content,omitempty"`
	User    string   `json:"user,omitempty"`
}

// Edge is a typed, directed relation between two nodes
type Edge struct {
	From string   `json:"from" validate:"required"`
	To   string   `json:"to" validate:"required"`
	Type EdgeType `json:"type" validate:"required,edgetype"`
}

// Key returns the identity of the edge
func (e Edge) Key() EdgeKey {
	return EdgeKey{From: e.From, To: e.To}
}

// EdgeKey identifies an edge by its endpoint ids. Direction matters.
type EdgeKey struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// String renders the key as "from->to"
func (k EdgeKey) String() string {
	return k.From + "->" + k.To
}

// Data is one graph snapshot as delivered by the data store
type Data struct {
	Nodes []Node `json:"nodes" validate:"dive"`
	Edges []Edge `json:"edges" validate:"dive"`
}

// Resolved is the materialized view of a snapshot: edges whose endpoints
// both exist, plus the id lookup used to resolve them
type Resolved struct {
	Index   map[string]int
	Edges   []Edge
	Dropped int
}
