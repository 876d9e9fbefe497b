package models

// All returns every model that is migrated.
func All() []interface{} {
	return []interface{}{&Team{}, &Member{}, &Task{}}
}
