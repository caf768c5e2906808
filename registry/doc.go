/*
Package registry is the type catalog of the hbnb store.

The catalog resolves a class name typed at the prompt to one of a closed set
of variants registered at compile time:

	catalog := registry.DefaultCatalog()
	v, err := catalog.Resolve("Place")
	if errors.IsClassNotFound(err) {
	    // "** class doesn't exist **"
	}
	place := v.New(time.Now())

Lookup is two-step. The name is lowercased to find its module ("BaseModel"
maps to "base_model"), then matched exactly against the classes of that
module. Class names are therefore case-sensitive.

Attributes are mutated through explicit, typed setters rather than by
arbitrary name:

	err := v.Set(place, "number_rooms", "3")    // ok
	err := v.Set(place, "number_rooms", "many") // ValidationError
	err := v.Set(place, "colour", "red")        // UnknownAttributeError
	err := v.Set(place, "id", "x")              // ErrProtectedAttribute

Variant.Decode is the inverse of Entity.ToRecord and is used when a store is
loaded from its durable mirror.
*/
package registry
