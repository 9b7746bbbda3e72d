package catalog

import (
	"github.com/hashicorp/go-set/v2"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Category groups products for add-on eligibility and listing order.
type Category string

const (
	CategoryWindows Category = "windows"
	CategoryDoors   Category = "doors"
)

var knownCategories = set.From([]Category{CategoryWindows, CategoryDoors})

// SizeOption is one selectable size of a product. Width and height are in millimetres.
type SizeOption struct {
	Label     string  `json:"label" yaml:"label"`
	Width     int     `json:"width" yaml:"width"`
	Height    int     `json:"height" yaml:"height"`
	BasePrice float64 `json:"base_price" yaml:"base_price"`
}

// Product is a configurable window or door with an ordered size table.
type Product struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Category    Category     `json:"category" yaml:"category"`
	Description string       `json:"description" yaml:"description"`
	Features    []string     `json:"features" yaml:"features"`
	Sizes       []SizeOption `json:"sizes" yaml:"sizes"`
}

// GlassOption scales the base price of a product.
type GlassOption struct {
	ID         string  `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
}

// FinishOption adds a flat surcharge per unit.
type FinishOption struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Surcharge float64 `json:"surcharge" yaml:"surcharge"`
	Hex       string  `json:"hex,omitempty" yaml:"hex,omitempty"`
}

// AddonOption is an extra priced per unit, limited to the categories in AppliesTo.
type AddonOption struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Price     float64    `json:"price" yaml:"price"`
	AppliesTo []Category `json:"applies_to" yaml:"applies_to"`

	eligible *set.Set[Category]
}

// Eligible reports whether the add-on can be fitted to products of category c.
func (a AddonOption) Eligible(c Category) bool {
	if a.eligible == nil {
		return lo.Contains(a.AppliesTo, c)
	}
	return a.eligible.Contains(c)
}

// Tables is the raw content of a catalog, in declared order.
type Tables struct {
	Windows []Product      `yaml:"windows"`
	Doors   []Product      `yaml:"doors"`
	Glass   []GlassOption  `yaml:"glass_options"`
	Finish  []FinishOption `yaml:"finish_options"`
	Addons  []AddonOption  `yaml:"addon_options"`
}

// Catalog is a validated, read-only set of products and options.
// It is safe for concurrent use because nothing mutates it after New.
type Catalog struct {
	windows []Product
	doors   []Product
	glass   []GlassOption
	finish  []FinishOption
	addons  []AddonOption
}

// New validates t and returns a catalog holding its own copy of the tables.
func New(t Tables) (*Catalog, error) {
	c := &Catalog{
		windows: cloneProducts(t.Windows),
		doors:   cloneProducts(t.Doors),
		glass:   append([]GlassOption(nil), t.Glass...),
		finish:  append([]FinishOption(nil), t.Finish...),
		addons:  make([]AddonOption, 0, len(t.Addons)),
	}

	if err := validateProducts(c.windows, CategoryWindows); err != nil {
		return nil, err
	}
	if err := validateProducts(c.doors, CategoryDoors); err != nil {
		return nil, err
	}
	if err := uniqueIDs("product", lo.Map(c.Products(), func(p Product, _ int) string { return p.ID })); err != nil {
		return nil, err
	}

	if len(c.glass) == 0 {
		return nil, errors.New("glass table is empty")
	}
	for _, g := range c.glass {
		if g.Multiplier < 0 {
			return nil, errors.Errorf("glass %q: negative multiplier %v", g.ID, g.Multiplier)
		}
	}
	if err := uniqueIDs("glass", lo.Map(c.glass, func(g GlassOption, _ int) string { return g.ID })); err != nil {
		return nil, err
	}

	if len(c.finish) == 0 {
		return nil, errors.New("finish table is empty")
	}
	for _, f := range c.finish {
		if f.Surcharge < 0 {
			return nil, errors.Errorf("finish %q: negative surcharge %v", f.ID, f.Surcharge)
		}
	}
	if err := uniqueIDs("finish", lo.Map(c.finish, func(f FinishOption, _ int) string { return f.ID })); err != nil {
		return nil, err
	}

	for _, a := range t.Addons {
		if a.Price < 0 {
			return nil, errors.Errorf("addon %q: negative price %v", a.ID, a.Price)
		}
		for _, cat := range a.AppliesTo {
			if !knownCategories.Contains(cat) {
				return nil, errors.Errorf("addon %q: unknown category %q", a.ID, cat)
			}
		}
		c.addons = append(c.addons, cloneAddon(a))
	}
	if err := uniqueIDs("addon", lo.Map(c.addons, func(a AddonOption, _ int) string { return a.ID })); err != nil {
		return nil, err
	}

	return c, nil
}

func validateProducts(products []Product, want Category) error {
	for _, p := range products {
		if p.ID == "" {
			return errors.Errorf("%s product without id", want)
		}
		if p.Category != want {
			return errors.Errorf("product %q: category %q listed under %s", p.ID, p.Category, want)
		}
		if len(p.Sizes) == 0 {
			return errors.Errorf("product %q has no sizes", p.ID)
		}
		for i, s := range p.Sizes {
			if s.BasePrice < 0 {
				return errors.Errorf("product %q size %d: negative base price %v", p.ID, i, s.BasePrice)
			}
		}
	}
	return nil
}

func uniqueIDs(kind string, ids []string) error {
	seen := set.New[string](len(ids))
	for _, id := range ids {
		if !seen.Insert(id) {
			return errors.Errorf("duplicate %s id %q", kind, id)
		}
	}
	return nil
}

func cloneProduct(p Product) Product {
	p.Features = append(make([]string, 0, len(p.Features)), p.Features...)
	p.Sizes = append(make([]SizeOption, 0, len(p.Sizes)), p.Sizes...)
	return p
}

func cloneProducts(in []Product) []Product {
	return lo.Map(in, func(p Product, _ int) Product { return cloneProduct(p) })
}

// cloneAddon copies AppliesTo and rebuilds the eligibility set from the copy,
// so the two never disagree.
func cloneAddon(a AddonOption) AddonOption {
	a.AppliesTo = append(make([]Category, 0, len(a.AppliesTo)), a.AppliesTo...)
	a.eligible = set.From(a.AppliesTo)
	return a
}

// Products returns windows followed by doors, in declared order.
func (c *Catalog) Products() []Product {
	out := make([]Product, 0, len(c.windows)+len(c.doors))
	out = append(out, cloneProducts(c.windows)...)
	return append(out, cloneProducts(c.doors)...)
}

// Windows returns the window products in declared order.
func (c *Catalog) Windows() []Product { return cloneProducts(c.windows) }

// Doors returns the door products in declared order.
func (c *Catalog) Doors() []Product { return cloneProducts(c.doors) }

// GlassOptions returns the glass table; the first entry is the default.
func (c *Catalog) GlassOptions() []GlassOption { return append([]GlassOption(nil), c.glass...) }

// FinishOptions returns the finish table; the first entry is the default.
func (c *Catalog) FinishOptions() []FinishOption { return append([]FinishOption(nil), c.finish...) }

// AddonOptions returns the add-on table in declared order.
func (c *Catalog) AddonOptions() []AddonOption {
	return lo.Map(c.addons, func(a AddonOption, _ int) AddonOption { return cloneAddon(a) })
}

// DefaultGlass is the glass used when a requested id is unknown.
func (c *Catalog) DefaultGlass() GlassOption { return c.glass[0] }

// DefaultFinish is the finish used when a requested id is unknown.
func (c *Catalog) DefaultFinish() FinishOption { return c.finish[0] }

// FindProduct looks up a window or door by id.
func (c *Catalog) FindProduct(id string) (Product, bool) {
	p, ok := lo.Find(c.windows, func(p Product) bool { return p.ID == id })
	if !ok {
		p, ok = lo.Find(c.doors, func(p Product) bool { return p.ID == id })
	}
	if !ok {
		return Product{}, false
	}
	return cloneProduct(p), true
}

// FindGlass looks up a glass option by id.
func (c *Catalog) FindGlass(id string) (GlassOption, bool) {
	return lo.Find(c.glass, func(g GlassOption) bool { return g.ID == id })
}

// FindFinish looks up a finish option by id.
func (c *Catalog) FindFinish(id string) (FinishOption, bool) {
	return lo.Find(c.finish, func(f FinishOption) bool { return f.ID == id })
}

// FindAddon looks up an add-on by id.
func (c *Catalog) FindAddon(id string) (AddonOption, bool) {
	a, ok := lo.Find(c.addons, func(a AddonOption) bool { return a.ID == id })
	if !ok {
		return AddonOption{}, false
	}
	return cloneAddon(a), true
}
