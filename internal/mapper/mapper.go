// Package mapper converts between nested objects and the flat key/value
// documents a schema-less store holds. Each target type registers an explicit
// TypeSchema instead of relying on reflection; a single recursive walk does
// the rest.
package mapper

import "fmt"

// TypeSchema describes how to build and populate a mapped type without going
// through its validating constructor. New returns a blank instance, Set
// assigns an attribute directly, and FromScalar (optional) constructs the
// type from a single scalar value, for wrapper types persisted without
// further structure.
type TypeSchema struct {
	Name       string
	New        func() any
	Set        func(target any, attribute string, value any) error
	FromScalar func(value any) (any, error)
}

// Mapper is a type-directed converter from document structures to instances
// of a configured target type. Configure once, map many.
type Mapper struct {
	schema       TypeSchema
	attrMappers  map[string]*Mapper
	isListMapper bool
}

// ForType returns a Mapper that produces instances of the schema's type.
func ForType(schema TypeSchema) *Mapper {
	return &Mapper{schema: schema, attrMappers: map[string]*Mapper{}}
}

// ForListOf returns a Mapper that expects a sequence and maps each element to
// the schema's type.
func ForListOf(schema TypeSchema) *Mapper {
	m := ForType(schema)
	m.isListMapper = true
	return m
}

// WithAttributeMappings registers nested mappers by attribute name. Keys
// without a registered mapper are assigned raw.
func (m *Mapper) WithAttributeMappings(attrs map[string]*Mapper) *Mapper {
	for name, attrMapper := range attrs {
		m.attrMappers[name] = attrMapper
	}
	return m
}

// FromDocument maps a key/value document to an instance of the target type.
// Nested documents recurse through their registered mappers; scalars with a
// registered mapper go through single-argument construction; everything else
// is assigned as-is.
func (m *Mapper) FromDocument(doc any) (any, error) {
	fields, ok := doc.(map[string]any)
	if !ok {
		return nil, &TypeError{Message: fmt.Sprintf("expected a document to map to %s, received %T", m.schema.Name, doc)}
	}

	instance := m.schema.New()

	for name, value := range fields {
		attrMapper, mapped := m.attrMappers[name]
		if !mapped || value == nil {
			if err := m.schema.Set(instance, name, value); err != nil {
				return nil, err
			}
			continue
		}

		if attrMapper.isListMapper {
			sequence, ok := value.([]any)
			if !ok {
				return nil, &ValueError{Message: fmt.Sprintf("the mapper for %q was configured to process a list, but a %T was received", name, value)}
			}
			items := make([]any, 0, len(sequence))
			for _, element := range sequence {
				item, err := attrMapper.FromDocument(element)
				if err != nil {
					return nil, err
				}
				items = append(items, item)
			}
			if err := m.schema.Set(instance, name, items); err != nil {
				return nil, err
			}
			continue
		}

		if nested, ok := value.(map[string]any); ok {
			child, err := attrMapper.FromDocument(nested)
			if err != nil {
				return nil, err
			}
			if err := m.schema.Set(instance, name, child); err != nil {
				return nil, err
			}
			continue
		}

		if attrMapper.schema.FromScalar == nil {
			return nil, &ValueError{Message: fmt.Sprintf("the mapper for %q cannot construct %s from a scalar %T", name, attrMapper.schema.Name, value)}
		}
		wrapped, err := attrMapper.schema.FromScalar(value)
		if err != nil {
			return nil, err
		}
		if err := m.schema.Set(instance, name, wrapped); err != nil {
			return nil, err
		}
	}

	return instance, nil
}
