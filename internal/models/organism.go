package models

// Position is a point in the 3-D visualization space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Color holds normalized RGB channels in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

type OrganismMeta struct {
	Author          string `json:"author,omitempty"`
	Engagement      int    `json:"engagement,omitempty"`
	Likes           int    `json:"likes,omitempty"`
	Reposts         int    `json:"reposts,omitempty"`
	Replies         int    `json:"replies,omitempty"`
	URI             string `json:"uri,omitempty"`
	Source          string `json:"source,omitempty"`
	ChildCount      int    `json:"child_count,omitempty"`
	TotalEngagement int    `json:"total_engagement,omitempty"`
	AggregateMethod string `json:"aggregate_method,omitempty"`
}

// Organism is one rendered life form: a post, a component or the whole
// entity, depending on the aggregation level.
type Organism struct {
	ID       string        `json:"id"`
	Position Position      `json:"position"`
	Size     float64       `json:"size"`
	Color    Color         `json:"color"`
	Velocity float64       `json:"velocity"`
	Text     string        `json:"text,omitempty"`
	Metadata *OrganismMeta `json:"metadata,omitempty"`
}

// CompositeOrganism is an organism folded together from child organisms.
// Children are kept for further aggregation but never serialized with the
// composite itself.
type CompositeOrganism struct {
	Organism
	Children []*Organism `json:"-"`
}

// Visualization is the full scene published after a refresh cycle and stored
// as the tracespace_full snapshot payload.
type Visualization struct {
	Timestamp  string             `json:"timestamp"`
	Entity     *Organism          `json:"entity"`
	Components []*Organism        `json:"components"`
	Organisms  []*Organism        `json:"subcomponents"`
	Stats      VisualizationStats `json:"stats"`
}

type VisualizationStats struct {
	TotalOrganisms  int `json:"total_organisms"`
	ComponentCount  int `json:"component_count"`
	TotalEngagement int `json:"total_engagement"`
}
