package curriculum

// Curriculum is the root of the document tree. Exactly one instance lives in
// memory at a time; it is replaced wholesale when a generated document loads
// or a new streaming run starts.
type Curriculum struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Modules     []Module `json:"modules"`
}

type Module struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Topics      []Topic `json:"topics"`
}

type Topic struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Lessons     []Lesson `json:"lessons"`
}

// Lesson is the leaf level. Content is extra wire data the UI may display;
// the core carries it through without validating it.
type Lesson struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content,omitempty"`
}

// New returns an empty root with the given identifier.
func New(id string) *Curriculum {
	return &Curriculum{
		ID:      id,
		Modules: []Module{},
	}
}

// Clone deep-copies the whole tree. The reducer mutates clones, never its
// input.
func (c *Curriculum) Clone() *Curriculum {
	out := *c
	out.Modules = cloneModules(c.Modules)
	return &out
}

func cloneModules(in []Module) []Module {
	out := make([]Module, len(in))
	for i, m := range in {
		out[i] = m
		out[i].Topics = cloneTopics(m.Topics)
	}
	return out
}

func cloneTopics(in []Topic) []Topic {
	out := make([]Topic, len(in))
	for i, tp := range in {
		out[i] = tp
		out[i].Lessons = append([]Lesson(nil), tp.Lessons...)
	}
	return out
}

// Normalize fills child slices that decoded as null so downstream code can
// treat them as empty sequences.
func (c *Curriculum) Normalize() {
	if c.Modules == nil {
		c.Modules = []Module{}
	}
	for i := range c.Modules {
		c.Modules[i].Normalize()
	}
}

func (m *Module) Normalize() {
	if m.Topics == nil {
		m.Topics = []Topic{}
	}
	for i := range m.Topics {
		if m.Topics[i].Lessons == nil {
			m.Topics[i].Lessons = []Lesson{}
		}
	}
}
