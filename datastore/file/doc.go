/*
Package file provides the JSON file implementation of datastore.Backend.

The file holds one JSON object keyed by composite key. Each value is the
record of one entity, with ISO-8601 timestamps and the __class__
discriminator:

	{
	  "User.56d43177-cc5f-4d6c-a0c1-e167f8c27337": {
	    "id": "56d43177-cc5f-4d6c-a0c1-e167f8c27337",
	    "created_at": "2025-03-01T10:00:00.000000Z",
	    "updated_at": "2025-03-01T10:00:00.000000Z",
	    "__class__": "User",
	    "email": ""
	  }
	}

Every Write replaces the file through a temporary file and a rename, so a
crash mid-write leaves the previous version intact. A missing file reads as
an empty store; a file that is not such an object is reported as
errors.ErrLoadCorrupt. Non-string scalar values written by other tools are
accepted and converted to strings.
*/
package file
