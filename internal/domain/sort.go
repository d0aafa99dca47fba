package domain

import "sort"

// SortRooms orders a listing for the visitor's selection: available
// rooms first, then rooms whose capacity fits the requested guests,
// then pet-friendly rooms when pets travel too. The sort is stable so
// seed order breaks ties.
func SortRooms(rooms []Room, q RoomsQuery) {
	total := q.Adults + q.Children
	sort.SliceStable(rooms, func(i, j int) bool {
		a, b := rooms[i], rooms[j]
		if a.Available != b.Available {
			return a.Available
		}
		aFits, bFits := a.MaxGuests >= total, b.MaxGuests >= total
		if aFits != bFits {
			return aFits
		}
		if q.Pets > 0 {
			aPets, bPets := a.PetFriendly(), b.PetFriendly()
			if aPets != bPets {
				return aPets
			}
		}
		return false
	})
}
