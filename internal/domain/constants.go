package domain

// Kind selects which catalog table a favorite points at.
type Kind string

const (
	KindPlanet    Kind = "planet"
	KindCharacter Kind = "character"
	KindVehicle   Kind = "vehicle"
)

// Kinds lists every favorite target kind in a stable order.
var Kinds = []Kind{KindPlanet, KindCharacter, KindVehicle}

// Favorite feed event types.
const (
	EventFavoriteAdded   = "favorite_added"
	EventFavoriteRemoved = "favorite_removed"
)
