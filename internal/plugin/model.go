package plugin

// Plugin is the static descriptor of one integration. Descriptors are built
// at process start and must not be mutated afterwards; everything derived
// per tenant (bound actions, field lists) is computed from them, never
// written back.
type Plugin struct {
	Slug         string
	Name         string
	ConfigSchema *Object
	Actions      []*Action
	Metadata     Metadata
}

// Action is a named, schema-typed operation a plugin exposes. Handler is the
// name of a Go handler registered separately with the registry; the parity
// between the two is checked at startup.
type Action struct {
	Name        string
	Description string
	Handler     string
	InputSchema *Object
}

// Metadata is the marketplace-facing description of a plugin.
type Metadata struct {
	Verified    bool              `json:"verified"`
	Published   bool              `json:"published"`
	Description string            `json:"description,omitempty"`
	Category    string            `json:"category,omitempty"`
	Developer   string            `json:"developer,omitempty"`
	Website     string            `json:"website,omitempty"`
	Logo        string            `json:"logo,omitempty"`
	Screenshots []string          `json:"screenshots,omitempty"`
	Links       map[string]string `json:"links,omitempty"`
}

// ActionByName returns the declared action with the given name, or nil.
func (p *Plugin) ActionByName(name string) *Action {
	for _, a := range p.Actions {
		if a.Name == name {
			return a
		}
	}
	return nil
}
