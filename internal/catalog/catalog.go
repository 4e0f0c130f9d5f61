package catalog

import "gorm.io/gorm"

// Kind describes how a schema field is typed and coerced.
type Kind string

const (
	KindString     Kind = "string"
	KindText       Kind = "text"
	KindDecimal    Kind = "decimal"
	KindInt        Kind = "int"
	KindBool       Kind = "bool"
	KindStringList Kind = "string_list"
	KindJSONMap    Kind = "json_map"
)

// FieldSpec declares one externally writable field of a category schema.
// System-managed columns (id, status, approval metadata, timestamps) are
// never part of a schema, so they can never be written through the
// submission or update-request paths.
type FieldSpec struct {
	Name     string
	Kind     Kind
	Required bool
	Mutable  bool
}

// Category describes one listable item category. All categories share the
// same row shape; schema fields that don't map to a dedicated column live
// in the item's attributes JSON.
type Category struct {
	Slug      string // URL slug, also the polymorphic type tag stored in DB
	Name      string // display name
	Table     string // items are stored in one table per category
	LegacyTag string // type tag used by older clients ("Product", "TouristSpot", ...)
	Fields    []FieldSpec
}

// Field returns the schema entry for a named field, if the category declares it.
func (c *Category) Field(name string) (FieldSpec, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// MutableFields returns the allowlist of field names external write paths
// may set on this category's items.
func (c *Category) MutableFields() []string {
	out := make([]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		if f.Mutable {
			out = append(out, f.Name)
		}
	}
	return out
}

// Scope returns a GORM scope that targets this category's item table.
func (c *Category) Scope() func(db *gorm.DB) *gorm.DB {
	table := c.Table
	return func(db *gorm.DB) *gorm.DB {
		return db.Table(table)
	}
}
