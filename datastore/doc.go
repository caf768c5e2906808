/*
Package datastore is the object store of hbnb: an in-memory registry of
entities keyed by composite key ("<Class>.<id>"), mirrored to a durable
Backend.

	type Backend interface {
	    Name() string
	    Read(ctx context.Context) (map[string]storagemodels.Record, error)
	    Write(ctx context.Context, records map[string]storagemodels.Record) error
	}

Implementations:
  - file: a single JSON document, rewritten atomically on every write
  - mock: in-memory backend with error injection for testing
  - ddb: DynamoDB table holding one item per entity

The Store never batches. Callers mutate it with Put and Delete and then call
Persist, which rewrites the whole backend from the in-memory state. Load
resolves every record's __class__ discriminator through the type catalog and
refuses corrupt input instead of starting empty.
*/
package datastore
