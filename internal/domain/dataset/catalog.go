package dataset

// Definition maps a set of repository names onto one source bucket.
type Definition struct {
	Source Source
	Label  string
	Repos  []string
}

// Catalog is the fixed set of configured sources. Built once at startup from
// configuration; repositories not matched by any definition fall into the
// default source.
type Catalog struct {
	defs      []Definition
	byRepo    map[string]Source
	labels    map[Source]string
	defaultTo Source
}

func NewCatalog(defs []Definition, defaultSource Source, defaultLabel string) *Catalog {
	c := &Catalog{
		defs:      append([]Definition(nil), defs...),
		byRepo:    make(map[string]Source),
		labels:    make(map[Source]string),
		defaultTo: defaultSource,
	}
	for _, d := range c.defs {
		c.labels[d.Source] = d.Label
		for _, repo := range d.Repos {
			c.byRepo[repo] = d.Source
		}
	}
	if defaultSource != "" {
		if _, ok := c.labels[defaultSource]; !ok {
			c.defs = append(c.defs, Definition{Source: defaultSource, Label: defaultLabel})
			c.labels[defaultSource] = defaultLabel
		}
	}
	return c
}

// SourceFor resolves a repository name to its configured source bucket.
func (c *Catalog) SourceFor(repo string) Source {
	if s, ok := c.byRepo[repo]; ok {
		return s
	}
	return c.defaultTo
}

// Sources returns the configured sources in definition order.
func (c *Catalog) Sources() []Source {
	out := make([]Source, 0, len(c.defs))
	for _, d := range c.defs {
		out = append(out, d.Source)
	}
	return out
}

// Label returns the display label for a source, falling back to the raw
// source name when none is configured.
func (c *Catalog) Label(s Source) string {
	if l, ok := c.labels[s]; ok && l != "" {
		return l
	}
	return string(s)
}

// Has reports whether s is one of the configured sources.
func (c *Catalog) Has(s Source) bool {
	_, ok := c.labels[s]
	return ok
}
