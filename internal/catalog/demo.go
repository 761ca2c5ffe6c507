package catalog

import "github.com/pkordes/tourdesk/internal/domain"

func hours(n int) *int { return &n }

// DemoTours is the built-in fallback set. The tours carry no identifier, so
// the booking flow never submits them. Every call returns fresh values.
func DemoTours() []domain.Tour {
	return []domain.Tour{
		{
			Title:         "Sunset Kayak Adventure",
			Location:      "Vancouver, Canada",
			Description:   "Paddle along the coastline at golden hour with a certified guide and warm beverages included.",
			Price:         domain.NewPrice(120),
			MaxCapacity:   12,
			DurationHours: hours(3),
			ActivityLevel: "Easy",
			Gear:          []string{"Dry bag", "Layered clothing", "Water bottle"},
			Highlights:    []string{"Golden-hour paddle past Stanley Park", "Harbour seal sightings", "Hot cocoa on the beach"},
			GuideTip:      "Wear shoes you don't mind getting wet.",
		},
		{
			Title:         "Sahara Stargazing Trek",
			Location:      "Merzouga, Morocco",
			Description:   "Ride across the dunes on camelback before camping under the clearest night skies imaginable.",
			Price:         domain.NewPrice(240),
			MaxCapacity:   8,
			DurationHours: hours(48),
			ActivityLevel: "Moderate",
			Gear:          []string{"Headlamp", "Warm jacket for the night", "Scarf against sand"},
			Highlights:    []string{"Camel ride over Erg Chebbi", "Berber camp dinner", "Guided night-sky tour"},
			GuideTip:      "Desert nights get cold; pack one more layer than you think.",
		},
		{
			Title:         "Patagonia Glacier Hike",
			Location:      "El Calafate, Argentina",
			Description:   "Strap on crampons for a guided exploration of the Perito Moreno glacier and its ice caves.",
			Price:         domain.NewPrice(320),
			MaxCapacity:   10,
			DurationHours: hours(8),
			ActivityLevel: "Challenging",
			Gear:          []string{"Waterproof boots", "Gloves", "Sunglasses"},
			Highlights:    []string{"Crampon walk on Perito Moreno", "Blue ice caves", "Whisky with glacier ice"},
			GuideTip:      "Sun reflects hard off the ice; bring sunscreen.",
		},
	}
}
