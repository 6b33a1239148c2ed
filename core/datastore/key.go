package datastore

/*Key - a type for the entity key */
type Key = string

/*EmptyKey - an empty key */
var EmptyKey = Key("")

/*IsEmpty - checks if the key is empty */
func IsEmpty(key Key) bool {
	return key == EmptyKey
}
