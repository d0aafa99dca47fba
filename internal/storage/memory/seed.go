package memory

import "elegante_hospedagem/internal/domain"

// SeedRooms is the demo catalog shipped with the storefront.
func SeedRooms() []domain.Room {
	return []domain.Room{
		{
			ID:          "1",
			Name:        "Suíte Premium com Vista para o Mar",
			Description: "Suíte luxuosa com uma vista deslumbrante para o mar, varanda privativa e banheira de hidromassagem.",
			Media: []domain.MediaItem{
				{Type: domain.MediaImage, Src: "https://images.unsplash.com/photo-1590490360182-c33d57733427"},
				{Type: domain.MediaImage, Src: "https://images.unsplash.com/photo-1560185007-cde436f6a4d0"},
				{
					Type:      domain.MediaVideo,
					Src:       "https://assets.mixkit.co/videos/preview/mixkit-white-sand-beach-and-palm-trees-1564-large.mp4",
					Thumbnail: "https://images.unsplash.com/photo-1566073771259-6a8506099945",
				},
			},
			Price:     850,
			PriceUnit: "noite",
			Available: true,
			MaxGuests: 3,
			Amenities: []domain.Amenity{
				{ID: "1", Name: "Wi-Fi", Icon: "wifi"},
				{ID: "2", Name: "TV 4K", Icon: "tv"},
				{ID: "3", Name: "Cafeteira", Icon: "coffee"},
				{ID: "4", Name: "Restaurante", Icon: "restaurant"},
				{ID: "5", Name: "Banheira", Icon: "bath"},
				{ID: "6", Name: "Ar-condicionado", Icon: "ac"},
			},
		},
		{
			ID:          "2",
			Name:        "Chalé Familiar na Montanha",
			Description: "Chalé aconchegante com lareira, ideal para famílias que buscam conforto e contato com a natureza.",
			Media: []domain.MediaItem{
				{Type: domain.MediaImage, Src: "https://images.unsplash.com/photo-1470770841072-f978cf4d019e"},
				{Type: domain.MediaImage, Src: "https://images.unsplash.com/photo-1604537529428-15bcbeecfe4d"},
			},
			Price:     620,
			PriceUnit: "noite",
			Available: true,
			MaxGuests: 5,
			Amenities: []domain.Amenity{
				{ID: "1", Name: "Wi-Fi", Icon: "wifi"},
				{ID: "2", Name: "TV", Icon: "tv"},
				{ID: "3", Name: "Cafeteira", Icon: "coffee"},
				{ID: "4", Name: "Pet-friendly", Icon: "petFriendly"},
				{ID: "5", Name: "Kid-friendly", Icon: "kidFriendly"},
			},
		},
		{
			ID:          "3",
			Name:        "Bangalô Tropical com Piscina Privativa",
			Description: "Bangalô espaçoso em meio a um jardim tropical, com piscina privativa e terraço para refeições ao ar livre.",
			Media: []domain.MediaItem{
				{Type: domain.MediaImage, Src: "https://images.unsplash.com/photo-1540541338287-41700207dee6"},
				{
					Type:      domain.MediaVideo,
					Src:       "https://assets.mixkit.co/videos/preview/mixkit-swimming-pool-from-the-bottom-underwater-view-1509-large.mp4",
					Thumbnail: "https://images.unsplash.com/photo-1561501900-3701fa6a0864",
				},
			},
			Price:     1200,
			PriceUnit: "noite",
			Available: false,
			MaxGuests: 4,
			Amenities: []domain.Amenity{
				{ID: "1", Name: "Wi-Fi", Icon: "wifi"},
				{ID: "2", Name: "TV", Icon: "tv"},
				{ID: "3", Name: "Piscina", Icon: "bath"},
				{ID: "4", Name: "Ar-condicionado", Icon: "ac"},
				{ID: "5", Name: "Pet-friendly", Icon: "petFriendly"},
			},
		},
		{
			ID:          "4",
			Name:        "Apartamento Executivo no Centro",
			Description: "Apartamento moderno e bem equipado, localizado no centro da cidade com acesso fácil a atrações turísticas e restaurantes.",
			Media: []domain.MediaItem{
				{Type: domain.MediaImage, Src: "https://images.unsplash.com/photo-1502672260266-1c1ef2d93688"},
				{Type: domain.MediaImage, Src: "https://images.unsplash.com/photo-1578683010236-d716f9a3f461"},
			},
			Price:     450,
			PriceUnit: "noite",
			Available: true,
			MaxGuests: 2,
			Amenities: []domain.Amenity{
				{ID: "1", Name: "Wi-Fi", Icon: "wifi"},
				{ID: "2", Name: "TV", Icon: "tv"},
				{ID: "3", Name: "Cafeteira", Icon: "coffee"},
				{ID: "4", Name: "Ar-condicionado", Icon: "ac"},
			},
		},
	}
}
