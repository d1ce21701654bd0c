package models

// Entity is anything stored in a string-keyed content collection
type Entity interface {
	EntityID() string
}
