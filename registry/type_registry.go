package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/suparena/hbnb/errors"
	"github.com/suparena/hbnb/storagemodels"
)

// baseModule is the one module whose name is not the lowercased class name.
const baseModule = "base_model"

// Catalog maps class names to entity variants.
//
// Variants are grouped by module. A lookup lowercases the requested name to
// find the module, then matches the class name exactly inside it, so "User"
// resolves while "user" and "USER" find the module but no class.
type Catalog struct {
	mu      sync.RWMutex
	modules map[string]map[storagemodels.Class]Variant
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		modules: make(map[string]map[storagemodels.Class]Variant),
	}
}

// DefaultCatalog returns a catalog holding every built-in variant.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	for _, v := range Variants() {
		c.RegisterType(v)
	}
	return c
}

// ModuleName returns the module a class name is looked up in.
func ModuleName(name string) string {
	if name == string(storagemodels.ClassBaseModel) {
		return baseModule
	}
	return strings.ToLower(name)
}

// RegisterType registers a variant under its module.
// If the class is already registered, it panics to prevent accidental overrides.
func (c *Catalog) RegisterType(v Variant) {
	if v.Module == "" {
		v.Module = ModuleName(string(v.Class))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	classes, ok := c.modules[v.Module]
	if !ok {
		classes = make(map[storagemodels.Class]Variant)
		c.modules[v.Module] = classes
	}
	if _, exists := classes[v.Class]; exists {
		panic(fmt.Sprintf("type registry: class %q already registered", v.Class))
	}
	classes[v.Class] = v
}

// Resolve returns the variant registered for name.
// Unknown names return an error matching errors.ErrClassNotFound.
func (c *Catalog) Resolve(name string) (Variant, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	classes, ok := c.modules[ModuleName(name)]
	if !ok {
		return Variant{}, errors.NewClassNotFoundError(name)
	}
	v, ok := classes[storagemodels.Class(name)]
	if !ok {
		return Variant{}, errors.NewClassNotFoundError(name)
	}
	return v, nil
}

// Classes returns every registered class name, sorted.
func (c *Catalog) Classes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var names []string
	for _, classes := range c.modules {
		for class := range classes {
			names = append(names, string(class))
		}
	}
	sort.Strings(names)
	return names
}
