package spec

// Specification is the platform-agnostic input document describing an
// application: entities, flows, architecture, and compliance rules.
// It is pure data and treated as immutable once handed to a compilation run.
type Specification struct {
	ID            string           `json:"id" yaml:"id"`
	Name          string           `json:"name" yaml:"name"`
	Version       string           `json:"version" yaml:"version"`
	SchemaVersion string           `json:"schema_version" yaml:"schema_version"`
	Entities      []Entity         `json:"entities" yaml:"entities"`
	Flows         []Flow           `json:"flows" yaml:"flows"`
	Architecture  Architecture     `json:"architecture" yaml:"architecture"`
	Compliance    []ComplianceRule `json:"compliance" yaml:"compliance"`
}

// Entity represents a single data entity in the specification
type Entity struct {
	Name          string         `json:"name" yaml:"name"`
	Fields        []Field        `json:"fields" yaml:"fields"`
	Relationships []Relationship `json:"relationships,omitempty" yaml:"relationships,omitempty"`
	Constraints   []string       `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	Indexes       []Index        `json:"indexes,omitempty" yaml:"indexes,omitempty"`
}

// Field represents a typed entity field
type Field struct {
	Name       string   `json:"name" yaml:"name"`
	Type       string   `json:"type" yaml:"type"` // uuid, string, text, int, float, bool, datetime, json
	Required   bool     `json:"required" yaml:"required"`
	Validation []string `json:"validation,omitempty" yaml:"validation,omitempty"`
}

// Relationship links one entity to another by name
type Relationship struct {
	Name   string `json:"name" yaml:"name"`
	Kind   string `json:"kind" yaml:"kind"` // one-to-one, one-to-many, many-to-many
	Target string `json:"target" yaml:"target"`
}

// Index declares a lookup index over entity fields
type Index struct {
	Name   string   `json:"name" yaml:"name"`
	Fields []string `json:"fields" yaml:"fields"`
	Unique bool     `json:"unique" yaml:"unique"`
}

// Flow represents one user-visible workflow through the application
type Flow struct {
	Name         string     `json:"name" yaml:"name"`
	Trigger      string     `json:"trigger" yaml:"trigger"` // e.g. user-action, schedule, webhook
	AuthRequired bool       `json:"auth_required" yaml:"auth_required"`
	Steps        []FlowStep `json:"steps" yaml:"steps"`
}

// FlowStep is a single step in a flow, optionally touching an entity
type FlowStep struct {
	Name   string `json:"name" yaml:"name"`
	Action string `json:"action" yaml:"action"` // create, read, update, delete, notify, compute
	Entity string `json:"entity,omitempty" yaml:"entity,omitempty"`
}

// Architecture describes the intended structural decomposition
type Architecture struct {
	Pattern    string      `json:"pattern" yaml:"pattern"` // layered, hexagonal, microservices
	Layers     []string    `json:"layers,omitempty" yaml:"layers,omitempty"`
	Components []Component `json:"components,omitempty" yaml:"components,omitempty"`
}

// Component is one architectural component
type Component struct {
	Name           string   `json:"name" yaml:"name"`
	Responsibility string   `json:"responsibility,omitempty" yaml:"responsibility,omitempty"`
	DependsOn      []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
}

// ComplianceRule declares a rule the generated output must reflect
type ComplianceRule struct {
	ID          string   `json:"id" yaml:"id"`
	Category    string   `json:"category" yaml:"category"` // encryption-at-rest, audit-logging, pii, access-control
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	AppliesTo   []string `json:"applies_to,omitempty" yaml:"applies_to,omitempty"`
}

// Entity lookup helpers used across generation and analysis.

// EntityNames returns entity names in declaration order.
func (s *Specification) EntityNames() []string {
	names := make([]string, len(s.Entities))
	for i, e := range s.Entities {
		names[i] = e.Name
	}
	return names
}

// FindEntity returns the entity with the given name, if declared.
func (s *Specification) FindEntity(name string) (Entity, bool) {
	for _, e := range s.Entities {
		if e.Name == name {
			return e, true
		}
	}
	return Entity{}, false
}

// RequiredFieldNames returns the names of the entity's required fields.
func (e Entity) RequiredFieldNames() []string {
	var names []string
	for _, f := range e.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}
