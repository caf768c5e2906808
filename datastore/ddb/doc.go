/*
Package ddb provides a DynamoDB implementation of datastore.Backend.

The table needs a single string partition key named PK. Every entity is
stored as one item: the fields of its record plus PK set to the composite
key.

	PK                  id    created_at                    __class__  email
	User.56d43177-...   56d.. 2025-03-01T10:00:00.000000Z   User       a@b.c

Write mirrors the in-memory store: it puts every record, then deletes items
whose key is no longer present. Read scans the whole table; an empty table
is an empty start.

Client construction:

	client, err := ddb.NewDynamoDBClient(ctx, ddb.ClientOptions{
	    Region:   "eu-west-1",
	    Endpoint: "http://localhost:8000", // optional, DynamoDB Local
	})
	backend := ddb.NewDynamodbBackend(client, "hbnb", logger)
*/
package ddb
