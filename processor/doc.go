/*
Package processor implements the command service behind the hbnb console.

A Processor validates the arguments of a verb, resolves the class name
through the type catalog and only then touches the store:

	p := processor.New(store, registry.DefaultCatalog(), processor.WithLogger(logger))

	id, err := p.Create(ctx, "User")
	user, err := p.Show(ctx, "User", id)
	user, err = p.Update(ctx, "User", id, "email", "x@y.com")
	err = p.Destroy(ctx, "User", id)
	users, err := p.All(ctx, "User")
	n, err := p.Count(ctx, "User")

Errors are reported in a fixed order: missing arguments first (class, id,
attribute, value), then an unknown class, then a missing instance. Every
failure leaves the store untouched.

Mutating verbs persist the whole store before returning. If the write fails,
the in-memory change is rolled back and the write error is returned.
*/
package processor
