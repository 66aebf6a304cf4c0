package models

// All returns every persisted model in dependency order.
func All() []any {
	return []any{
		&User{},
		&Planet{},
		&Character{},
		&Vehicle{},
		&Favorite{},
	}
}
