package template

// Resolver maps template and variant identifiers to concrete specs. It is
// constructed once at startup and handed to the layout engine explicitly so
// tests can substitute a fabricated template set.
type Resolver struct {
	templates map[string]TemplateSpec
	variants  map[string][]SectionKey
	defaultID string
}

// NewResolver returns a Resolver backed by the built-in template table.
func NewResolver() *Resolver {
	return &Resolver{
		templates: builtinTemplates(),
		variants:  variantOrders(),
		defaultID: DefaultTemplateID,
	}
}

// NewResolverWithTemplates returns a Resolver over a caller-supplied table.
// The defaultID must exist in the table.
func NewResolverWithTemplates(templates map[string]TemplateSpec, defaultID string) *Resolver {
	return &Resolver{
		templates: templates,
		variants:  variantOrders(),
		defaultID: defaultID,
	}
}

// Resolve looks up the template and fills in the section ordering for the
// variant. Unknown template IDs fall back to the default template; unknown
// variants fall back to the general ordering. Resolve never fails.
func (r *Resolver) Resolve(templateID, variant string) TemplateSpec {
	spec, ok := r.templates[templateID]
	if !ok {
		spec = r.templates[r.defaultID]
	}
	order, ok := r.variants[variant]
	if !ok {
		order = r.variants[DefaultVariant]
	}
	spec.SectionOrder = append([]SectionKey(nil), order...)
	return spec
}

// KnownVariant reports whether the variant has a dedicated ordering.
func (r *Resolver) KnownVariant(variant string) bool {
	_, ok := r.variants[variant]
	return ok
}
