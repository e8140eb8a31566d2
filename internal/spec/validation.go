package spec

import (
	"fmt"
	"strings"

	"github.com/polyforge/polyforge/internal/errors"
)

var validFieldTypes = map[string]bool{
	"uuid":     true,
	"string":   true,
	"text":     true,
	"int":      true,
	"float":    true,
	"bool":     true,
	"datetime": true,
	"json":     true,
}

var validRelationshipKinds = map[string]bool{
	"one-to-one":   true,
	"one-to-many":  true,
	"many-to-many": true,
}

// Validate checks the Specification for structural soundness: unique,
// non-empty names; relationship targets that exist; flow steps that touch
// declared entities; component dependencies that resolve. A structural
// problem is reported as a SpecInvalid error. An empty specification
// (zero entities, zero flows) is structurally valid.
func (s *Specification) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.NewSpecInvalidError("specification name cannot be empty")
	}

	entityNames := make(map[string]bool, len(s.Entities))
	for i, e := range s.Entities {
		if strings.TrimSpace(e.Name) == "" {
			return errors.NewSpecInvalidError(fmt.Sprintf("entity at index %d has no name", i))
		}
		if entityNames[e.Name] {
			return errors.NewSpecInvalidError(fmt.Sprintf("duplicate entity name %q", e.Name))
		}
		entityNames[e.Name] = true

		if err := e.validateFields(); err != nil {
			return err
		}
	}

	// Relationship targets and index fields resolve only after all entity
	// names are known.
	for _, e := range s.Entities {
		for _, r := range e.Relationships {
			if !validRelationshipKinds[r.Kind] {
				return errors.NewSpecInvalidError(fmt.Sprintf(
					"entity %q relationship %q has unknown kind %q", e.Name, r.Name, r.Kind))
			}
			if !entityNames[r.Target] {
				return errors.NewSpecInvalidError(fmt.Sprintf(
					"entity %q references nonexistent entity %q", e.Name, r.Target))
			}
		}
		fieldNames := make(map[string]bool, len(e.Fields))
		for _, f := range e.Fields {
			fieldNames[f.Name] = true
		}
		for _, idx := range e.Indexes {
			for _, fn := range idx.Fields {
				if !fieldNames[fn] {
					return errors.NewSpecInvalidError(fmt.Sprintf(
						"entity %q index %q covers unknown field %q", e.Name, idx.Name, fn))
				}
			}
		}
	}

	flowNames := make(map[string]bool, len(s.Flows))
	for i, f := range s.Flows {
		if strings.TrimSpace(f.Name) == "" {
			return errors.NewSpecInvalidError(fmt.Sprintf("flow at index %d has no name", i))
		}
		if flowNames[f.Name] {
			return errors.NewSpecInvalidError(fmt.Sprintf("duplicate flow name %q", f.Name))
		}
		flowNames[f.Name] = true

		for _, step := range f.Steps {
			if strings.TrimSpace(step.Name) == "" {
				return errors.NewSpecInvalidError(fmt.Sprintf("flow %q contains an unnamed step", f.Name))
			}
			if step.Entity != "" && !entityNames[step.Entity] {
				return errors.NewSpecInvalidError(fmt.Sprintf(
					"flow %q step %q touches nonexistent entity %q", f.Name, step.Name, step.Entity))
			}
		}
	}

	componentNames := make(map[string]bool, len(s.Architecture.Components))
	for _, c := range s.Architecture.Components {
		if strings.TrimSpace(c.Name) == "" {
			return errors.NewSpecInvalidError("architecture contains an unnamed component")
		}
		componentNames[c.Name] = true
	}
	for _, c := range s.Architecture.Components {
		for _, dep := range c.DependsOn {
			if !componentNames[dep] {
				return errors.NewSpecInvalidError(fmt.Sprintf(
					"component %q depends on undeclared component %q", c.Name, dep))
			}
		}
	}

	for _, rule := range s.Compliance {
		if strings.TrimSpace(rule.ID) == "" {
			return errors.NewSpecInvalidError("compliance rule has no id")
		}
		for _, target := range rule.AppliesTo {
			if !entityNames[target] {
				return errors.NewSpecInvalidError(fmt.Sprintf(
					"compliance rule %q applies to nonexistent entity %q", rule.ID, target))
			}
		}
	}

	return nil
}

func (e Entity) validateFields() error {
	fieldNames := make(map[string]bool, len(e.Fields))
	for _, f := range e.Fields {
		if strings.TrimSpace(f.Name) == "" {
			return errors.NewSpecInvalidError(fmt.Sprintf("entity %q has an unnamed field", e.Name))
		}
		if fieldNames[f.Name] {
			return errors.NewSpecInvalidError(fmt.Sprintf(
				"entity %q has duplicate field %q", e.Name, f.Name))
		}
		fieldNames[f.Name] = true

		if !validFieldTypes[f.Type] {
			return errors.NewSpecInvalidError(fmt.Sprintf(
				"entity %q field %q has unknown type %q", e.Name, f.Name, f.Type))
		}
	}
	return nil
}
