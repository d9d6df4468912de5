// Package material holds the fixed print-material density catalog.
package material

// Material pairs a material name with its density in g/cm³
type Material struct {
	Name    string  `json:"name"`
	Density float64 `json:"density"`
}

// The catalog is fixed at 20 entries. Order is part of the contract: mass
// tables keep this order and number the rows from 1.
var catalog = []Material{
	{"PLA", 1.250},
	{"PETG", 1.270},
	{"ABS", 1.020},
	{"Resin", 1.200},
	{"TPU (Rubber-like)", 1.200},
	{"Polyamide_SLS", 0.950},
	{"Polyamide_MJF", 1.010},
	{"Plexiglass", 1.180},
	{"Alumide", 1.360},
	{"Carbon Steel", 7.800},
	{"Steel", 7.860},
	{"Aluminum", 2.698},
	{"Titanium", 4.410},
	{"Brass", 8.600},
	{"Bronze", 9.000},
	{"Copper", 9.000},
	{"Silver", 10.260},
	{"Gold_14K", 13.600},
	{"Gold_18K", 15.600},
	{"3k CFRP", 1.790},
}

// Catalog returns a copy of the material catalog in declared order.
// Callers may reorder or mutate the copy freely.
func Catalog() []Material {
	out := make([]Material, len(catalog))
	copy(out, catalog)
	return out
}

// Find returns the density for a material name
func Find(name string) (float64, bool) {
	for _, m := range catalog {
		if m.Name == name {
			return m.Density, true
		}
	}
	return 0, false
}
