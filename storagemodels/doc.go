/*
Package storagemodels defines the data structures used throughout the hbnb store.

Key Types:

Entity:
One typed, identified record. The closed set of variants is BaseModel, User,
Place, City, State, Amenity and Review:

	e := NewEntity(ClassUser, []string{"email", "password"}, time.Now())
	e.Key()    // "User.2f6c..."
	e.String() // [User] (2f6c...) {"id": "2f6c...", "created_at": ..., "email": ""}

Record:
The persisted field map of an entity. Every value is a string; timestamps use
TimestampFormat (ISO-8601 with microseconds) and the variant is carried in
the __class__ discriminator:

	{"id": "2f6c...", "created_at": "2025-03-01T10:00:00.000000Z",
	 "updated_at": "2025-03-01T10:00:00.000000Z", "__class__": "User",
	 "email": ""}

QueryParams:
Parameters of a linear scan over the store:

	params := &QueryParams{Class: ClassPlace}
*/
package storagemodels
