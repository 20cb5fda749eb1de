// Package catalog holds the fixed inspector roster and the operator/fleet
// catalog that constrain the dialogue's selection steps.
package catalog

import "fmt"

// Inspector is one entry of the inspector roster.
type Inspector struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Entity is a legal entity (vessel operator) and the fleet it runs.
type Entity struct {
	Name  string   `yaml:"name"`
	Ships []string `yaml:"ships"`
}

// Option is one offered choice at a selection step. Value is what the
// transport echoes back; Label is what the operator sees.
type Option struct {
	Value string
	Label string
}

// Catalog is the full selection universe for the dialogue.
type Catalog struct {
	Inspectors []Inspector `yaml:"inspectors"`
	Entities   []Entity    `yaml:"entities"`
}

// Default returns the built-in catalog. Deployments can override it in the
// config file; the shape stays the same.
func Default() *Catalog {
	return &Catalog{
		Inspectors: []Inspector{
			{ID: "petrov", Name: "A. Petrov"},
			{ID: "sidorov", Name: "I. Sidorov"},
			{ID: "kuznetsova", Name: "V. Kuznetsova"},
		},
		Entities: []Entity{
			{
				Name:  "Murman Trawl Fleet",
				Ships: []string{"Kapitan Smirnov", "Okean", "Moryana"},
			},
			{
				Name:  "Arctic Catch",
				Ships: []string{"Polyarnik", "Severnoye Siyanie"},
			},
		},
	}
}

// InspectorByID looks up a roster entry by its ID.
func (c *Catalog) InspectorByID(id string) (Inspector, bool) {
	for _, ins := range c.Inspectors {
		if ins.ID == id {
			return ins, true
		}
	}
	return Inspector{}, false
}

// InspectorName returns the display name for an inspector ID, falling back
// to the ID itself for entries that have left the roster.
func (c *Catalog) InspectorName(id string) string {
	if ins, ok := c.InspectorByID(id); ok {
		return ins.Name
	}
	return id
}

// EntityByName looks up an entity by its exact name.
func (c *Catalog) EntityByName(name string) (Entity, bool) {
	for _, e := range c.Entities {
		if e.Name == name {
			return e, true
		}
	}
	return Entity{}, false
}

// HasShip reports whether the named ship belongs to the given entity's fleet.
func (c *Catalog) HasShip(entity, ship string) bool {
	e, ok := c.EntityByName(entity)
	if !ok {
		return false
	}
	for _, s := range e.Ships {
		if s == ship {
			return true
		}
	}
	return false
}

// InspectorOptions returns the choices offered at the inspector step.
func (c *Catalog) InspectorOptions() []Option {
	opts := make([]Option, 0, len(c.Inspectors))
	for _, ins := range c.Inspectors {
		opts = append(opts, Option{Value: ins.ID, Label: ins.Name})
	}
	return opts
}

// EntityOptions returns the choices offered at the entity step.
func (c *Catalog) EntityOptions() []Option {
	opts := make([]Option, 0, len(c.Entities))
	for _, e := range c.Entities {
		opts = append(opts, Option{Value: e.Name, Label: e.Name})
	}
	return opts
}

// ShipOptions returns the choices offered at the ship step for the chosen
// entity. The second return value is false for an unknown entity.
func (c *Catalog) ShipOptions(entity string) ([]Option, bool) {
	e, ok := c.EntityByName(entity)
	if !ok {
		return nil, false
	}
	opts := make([]Option, 0, len(e.Ships))
	for _, s := range e.Ships {
		opts = append(opts, Option{Value: s, Label: s})
	}
	return opts, true
}

// Validate checks the catalog is usable: non-empty roster, non-empty entity
// list, unique IDs and names, and at least one ship per entity.
func (c *Catalog) Validate() error {
	if len(c.Inspectors) == 0 {
		return fmt.Errorf("catalog has no inspectors")
	}
	if len(c.Entities) == 0 {
		return fmt.Errorf("catalog has no entities")
	}

	seenIDs := make(map[string]struct{}, len(c.Inspectors))
	for _, ins := range c.Inspectors {
		if ins.ID == "" || ins.Name == "" {
			return fmt.Errorf("inspector entries require both id and name")
		}
		if _, dup := seenIDs[ins.ID]; dup {
			return fmt.Errorf("duplicate inspector id %q", ins.ID)
		}
		seenIDs[ins.ID] = struct{}{}
	}

	seenNames := make(map[string]struct{}, len(c.Entities))
	for _, e := range c.Entities {
		if e.Name == "" {
			return fmt.Errorf("entity entries require a name")
		}
		if _, dup := seenNames[e.Name]; dup {
			return fmt.Errorf("duplicate entity %q", e.Name)
		}
		seenNames[e.Name] = struct{}{}
		if len(e.Ships) == 0 {
			return fmt.Errorf("entity %q has no ships", e.Name)
		}
	}

	return nil
}
