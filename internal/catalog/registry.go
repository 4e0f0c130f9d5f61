package catalog

// Field spec shorthands used by the category definitions below.
func f(name string, kind Kind) FieldSpec { return FieldSpec{Name: name, Kind: kind, Mutable: true} }
func req(name string, kind Kind) FieldSpec {
	return FieldSpec{Name: name, Kind: kind, Required: true, Mutable: true}
}

func base() []FieldSpec {
	return []FieldSpec{
		req("name", KindString),
		req("slug", KindString),
		f("description", KindText),
	}
}

func contact() []FieldSpec {
	return []FieldSpec{
		f("phone", KindString),
		f("email", KindString),
		f("website", KindString),
		f("facebook_url", KindString),
	}
}

func location() []FieldSpec {
	return []FieldSpec{
		f("division", KindString),
		f("district", KindString),
		f("area", KindString),
		f("address", KindText),
		f("latitude", KindDecimal),
		f("longitude", KindDecimal),
	}
}

func fields(groups ...[]FieldSpec) []FieldSpec {
	var out []FieldSpec
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

var categories = []*Category{
	{
		Slug: "products", Name: "Products", Table: "products", LegacyTag: "Product",
		Fields: fields(base(), []FieldSpec{
			f("manufacturer_id", KindInt),
			f("price", KindDecimal),
			f("price_currency", KindString),
			f("barcode", KindString),
			f("sku", KindString),
		}),
	},
	{
		Slug: "restaurants", Name: "Restaurants", Table: "restaurants", LegacyTag: "Restaurant",
		Fields: fields(base(), []FieldSpec{
			f("cuisine_type", KindString),
			f("avg_price_per_person", KindDecimal),
			f("phone", KindString),
			f("website", KindString),
			f("facebook_url", KindString),
		}, location(), []FieldSpec{
			f("operating_hours", KindJSONMap),
			f("has_delivery", KindBool),
			f("has_dine_in", KindBool),
		}),
	},
	{
		Slug: "shops", Name: "Shops", Table: "shops", LegacyTag: "Shop",
		Fields: fields(base(), []FieldSpec{
			f("type", KindString),
			f("branches", KindStringList),
			f("shop_type", KindString),
			f("payment_types", KindStringList),
			f("does_delivery", KindBool),
			f("famous_for", KindString),
		}, contact(), location(), []FieldSpec{
			f("operating_hours", KindJSONMap),
		}),
	},
	{
		Slug: "manufacturers", Name: "Manufacturers", Table: "manufacturers", LegacyTag: "Manufacturer",
		Fields: fields(base(), contact(), []FieldSpec{
			f("instagram_url", KindString),
			f("twitter_url", KindString),
		}, location()),
	},
	{
		Slug: "schools", Name: "Schools", Table: "schools", LegacyTag: "School",
		Fields: fields(base(), []FieldSpec{
			f("type", KindString),
			f("eiin_number", KindString),
		}, contact(), location(), []FieldSpec{
			f("admission_fee", KindDecimal),
			f("monthly_fee", KindDecimal),
			f("total_students", KindInt),
			f("total_teachers", KindInt),
		}),
	},
	{
		Slug: "universities", Name: "Universities", Table: "universities", LegacyTag: "University",
		Fields: fields(base(), []FieldSpec{
			f("type", KindString),
			f("accreditation", KindString),
			f("help_desk_phone", KindString),
			f("admission_office_phone", KindString),
			f("email", KindString),
			f("website", KindString),
			f("facebook_url", KindString),
		}, location(), []FieldSpec{
			f("courses_offered", KindStringList),
			f("famous_for_courses", KindStringList),
			f("university_grade", KindString),
			f("organization", KindString),
			f("undergraduate_fee", KindDecimal),
			f("graduate_fee", KindDecimal),
			f("total_students", KindInt),
			f("total_teachers", KindInt),
			f("total_faculty", KindInt),
			f("vice_chancellor", KindString),
			f("established_year", KindInt),
		}),
	},
	{
		Slug: "hospitals", Name: "Hospitals", Table: "hospitals", LegacyTag: "Hospital",
		Fields: fields(base(), []FieldSpec{
			f("type", KindString),
			f("emergency_phone", KindString),
		}, contact(), location(), []FieldSpec{
			f("specialties", KindStringList),
			f("has_emergency", KindBool),
			f("has_icu", KindBool),
			f("has_ambulance", KindBool),
			f("total_beds", KindInt),
			f("operating_hours", KindJSONMap),
		}),
	},
	{
		Slug: "hotels", Name: "Hotels", Table: "hotels", LegacyTag: "Hotel",
		Fields: fields(base(), []FieldSpec{
			f("star_rating", KindInt),
		}, contact(), location(), []FieldSpec{
			f("amenities", KindStringList),
			f("price_range_min", KindDecimal),
			f("price_range_max", KindDecimal),
			f("total_rooms", KindInt),
			f("has_restaurant", KindBool),
			f("has_parking", KindBool),
		}),
	},
	{
		Slug: "tourist-spots", Name: "Tourist Spots", Table: "tourist_spots", LegacyTag: "TouristSpot",
		Fields: fields(base(), []FieldSpec{
			f("type", KindString),
			f("phone", KindString),
			f("website", KindString),
		}, location(), []FieldSpec{
			f("entry_fee", KindDecimal),
			f("opening_hours", KindJSONMap),
			f("best_visit_time", KindString),
			f("activities", KindStringList),
			f("has_parking", KindBool),
			f("has_restaurant", KindBool),
			f("family_friendly", KindBool),
		}),
	},
	{
		Slug: "technicians", Name: "Technicians", Table: "technicians", LegacyTag: "Technician",
		Fields: fields(base(), []FieldSpec{
			f("specialty", KindString),
			f("technician_type", KindString),
			f("specialized_fields", KindStringList),
			f("portfolio_link", KindString),
		}, contact(), location(), []FieldSpec{
			f("service_areas", KindStringList),
			f("hourly_rate", KindDecimal),
			f("visit_charge", KindDecimal),
			f("services_offered", KindStringList),
			f("years_of_experience", KindInt),
			f("available_emergency", KindBool),
			f("working_hours", KindJSONMap),
		}),
	},
	{
		Slug: "websites", Name: "Websites", Table: "websites", LegacyTag: "Website",
		Fields: fields(base(), []FieldSpec{
			req("url", KindString),
			f("category", KindString),
			f("website_type", KindString),
			f("email", KindString),
			f("phone", KindString),
			f("facebook_url", KindString),
			f("twitter_url", KindString),
			f("instagram_url", KindString),
			f("is_bangladeshi", KindBool),
			f("has_mobile_app", KindBool),
			f("app_android_url", KindString),
			f("app_ios_url", KindString),
			f("languages_supported", KindStringList),
			f("payment_methods", KindStringList),
			f("has_customer_support", KindBool),
			f("support_phone", KindString),
			f("support_email", KindString),
			f("has_physical_store", KindBool),
			f("other_domains", KindStringList),
		}, location(), []FieldSpec{
			f("office_time", KindString),
			f("organization", KindString),
			f("total_employees", KindInt),
			f("delivery_rate", KindDecimal),
		}),
	},
}

var (
	bySlug = map[string]*Category{}
	byTag  = map[string]*Category{}
)

func init() {
	for _, c := range categories {
		bySlug[c.Slug] = c
		byTag[c.Slug] = c
		byTag[c.LegacyTag] = c
	}
}

// All returns every registered category in declaration order.
func All() []*Category {
	return categories
}

// BySlug looks a category up by its URL slug.
func BySlug(slug string) (*Category, bool) {
	c, ok := bySlug[slug]
	return c, ok
}

// ByTag resolves a polymorphic type tag. Both the canonical slug and the
// legacy model-name tag ("Product") are accepted so rows written by older
// clients still resolve.
func ByTag(tag string) (*Category, bool) {
	c, ok := byTag[tag]
	return c, ok
}
