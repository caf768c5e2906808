/*
Package errors provides the semantic error taxonomy of the hbnb object store.

Every user-facing failure of the console maps to one sentinel, which can be
checked with the standard errors.Is() function or the provided helpers.

Common Errors:

	var (
	    ErrClassMissing     = errors.New("class name missing")
	    ErrClassNotFound    = errors.New("class doesn't exist")
	    ErrIdMissing        = errors.New("instance id missing")
	    ErrInstanceNotFound = errors.New("no instance found")
	    ErrLoadCorrupt      = errors.New("backing store is corrupt")
	)

Usage:

	user, err := store.GetOne(ctx, "User.123")
	if err != nil {
	    if errors.IsNotFound(err) {
	        // Handle not found case
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewNotFoundError("User", "User.123")
	err := errors.NewValidationError("number_rooms", "must be an integer")
	err := errors.NewCorruptError("file.json", "User.123", "missing __class__", nil)

Only ErrLoadCorrupt is fatal, and only while a store is being opened. All
other errors are recoverable input errors reported back to the prompt.
*/
package errors
