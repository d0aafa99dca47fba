package domain

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

type MediaItem struct {
	Type      MediaType
	Src       string
	Thumbnail string
}

type Amenity struct {
	ID   string
	Name string
	Icon string
}

// Room is a bookable accommodation unit. Available is written only by
// the availability-refresh path; everything else is static seed data.
type Room struct {
	ID          string
	Name        string
	Description string
	Media       []MediaItem
	Price       float64 // per night, BRL
	PriceUnit   string
	Available   bool
	MaxGuests   int
	Amenities   []Amenity
}

// Clone returns a deep copy so cart snapshots never alias the live catalog.
func (r Room) Clone() Room {
	out := r
	if len(r.Media) > 0 {
		out.Media = make([]MediaItem, len(r.Media))
		copy(out.Media, r.Media)
	}
	if len(r.Amenities) > 0 {
		out.Amenities = make([]Amenity, len(r.Amenities))
		copy(out.Amenities, r.Amenities)
	}
	return out
}

// PetFriendly reports whether the room carries the pet-friendly amenity.
func (r Room) PetFriendly() bool {
	for _, a := range r.Amenities {
		if a.Icon == "petFriendly" {
			return true
		}
	}
	return false
}
