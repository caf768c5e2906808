/*
Package hbnb wires the hbnb object store together: it turns a config.Config
into a durable mirror and a loaded datastore.Store.

The building blocks live in sub-packages:
  - registry: the closed catalog of entity variants and their typed setters
  - datastore: the in-memory store and the Backend interface, with file,
    mock and ddb backends
  - processor: the create, show, update, destroy, all and count verbs
  - console: the line-oriented shell
  - config: YAML, .env and HBNB_* environment settings

Basic Usage:

	cfg, _ := config.Load("hbnb.yaml")
	catalog := registry.DefaultCatalog()

	store, err := hbnb.DefaultBackendManager().OpenStore(ctx, cfg, catalog, logger)
	if err != nil {
		// the mirror exists but could not be read
	}

	proc := processor.New(store, catalog)
	id, _ := proc.Create(ctx, "User")

The cmd/hbnb binary runs the console on top of this.
*/
package hbnb
