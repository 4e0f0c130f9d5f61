package catalog

import (
	"fmt"

	"listinghub/internal/models"
)

// ApplyProposed merges a proposed field diff into an item. Only keys on the
// category's mutable-field allowlist are applied; unknown or disallowed keys
// (including the pending-image sentinel keys) are dropped silently, never
// rejected. Values that cannot be coerced to the declared kind are likewise
// skipped. Returns the number of fields actually written.
func ApplyProposed(c *Category, item *models.Item, proposed map[string]interface{}) int {
	applied := 0
	for key, raw := range proposed {
		if key == models.KeyHasNewImages || key == models.KeyNewImagesCount {
			continue
		}
		spec, ok := c.Field(key)
		if !ok || !spec.Mutable {
			continue
		}
		value, err := Coerce(spec, raw)
		if err != nil {
			continue
		}
		setField(item, spec, value)
		applied++
	}
	return applied
}

// ValidateNew checks a creation payload against the category schema: every
// required field must be present and every provided value must coerce to
// its declared kind. Unknown keys are dropped. Returns the cleaned payload
// or a field-keyed error map.
func ValidateNew(c *Category, data map[string]interface{}) (map[string]interface{}, map[string]string) {
	clean := make(map[string]interface{}, len(data))
	problems := map[string]string{}

	for key, raw := range data {
		spec, ok := c.Field(key)
		if !ok {
			continue
		}
		value, err := Coerce(spec, raw)
		if err != nil {
			problems[key] = err.Error()
			continue
		}
		clean[key] = value
	}

	for _, spec := range c.Fields {
		if !spec.Required {
			continue
		}
		v, ok := clean[spec.Name]
		if !ok || v == nil || v == "" {
			problems[spec.Name] = fmt.Sprintf("field %s is required", spec.Name)
		}
	}

	if len(problems) > 0 {
		return nil, problems
	}
	return clean, nil
}

// PopulateItem writes a cleaned payload into a fresh item.
func PopulateItem(c *Category, item *models.Item, clean map[string]interface{}) {
	for key, value := range clean {
		if spec, ok := c.Field(key); ok {
			setField(item, spec, value)
		}
	}
}

// setField routes a coerced value either to the item's dedicated column or
// into its attributes JSON.
func setField(item *models.Item, spec FieldSpec, value interface{}) {
	if value == nil {
		return
	}
	switch spec.Name {
	case "name":
		item.Name = value.(string)
	case "slug":
		item.Slug = value.(string)
	case "description":
		item.Description = value.(string)
	case "phone":
		item.Phone = value.(string)
	case "email":
		item.Email = value.(string)
	case "website":
		item.Website = value.(string)
	case "facebook_url":
		item.FacebookURL = value.(string)
	case "division":
		item.Division = value.(string)
	case "district":
		item.District = value.(string)
	case "area":
		item.Area = value.(string)
	case "address":
		item.Address = value.(string)
	case "latitude":
		f := value.(float64)
		item.Latitude = &f
	case "longitude":
		f := value.(float64)
		item.Longitude = &f
	default:
		if item.Attributes == nil {
			item.Attributes = models.AttributeMap{}
		}
		item.Attributes[spec.Name] = attributeValue(spec, value)
	}
}

// attributeValue normalizes coerced values to the shapes AttributeMap yields
// when scanned back, so an item looks the same before and after a reload.
func attributeValue(spec FieldSpec, value interface{}) interface{} {
	switch spec.Kind {
	case KindInt:
		if i, ok := value.(int64); ok {
			return float64(i)
		}
	case KindStringList:
		if ss, ok := value.([]string); ok {
			out := make([]interface{}, len(ss))
			for i, s := range ss {
				out[i] = s
			}
			return out
		}
	}
	return value
}
