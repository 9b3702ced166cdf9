package catalog

// BuiltIn returns the flagship estate catalog shipped with the service.
func BuiltIn() []Villa {
	return []Villa{
		{
			ID:          "villays-flagship",
			Name:        "Villays Estate Amalfi",
			Location:    "Positano, Amalfi Coast, Italy",
			Description: "A 1,200m² masterpiece of Mediterranean heritage perched above the Tyrrhenian Sea, from the private limestone path leading to the water to the hand-carved stone baths.",
			Image:       "https://images.unsplash.com/photo-1600210492486-724fe5c67fb0?auto=format&fit=crop&q=80&w=2400",
			NightlyRate: 2450,
			Rating:      5.0,
			Reviews:     156,
			LivingArea:  1200,
			Bedrooms:    6,
			Tags:        []string{"Exclusive", "Fully Staffed", "Ocean Front"},
			Amenities: []string{
				"25m Heated Infinity Pool",
				"Private Cinema with 4K Laser Projection",
				"Fully Equipped Wellness Spa & Sauna",
				"Smart Home Automation",
				"Professional Grade Gym",
			},
			Suites: []Suite{
				{
					ID:          "suite-garden",
					Name:        "Garden Suite",
					Size:        "243 sq.m / 2616 sq.ft",
					View:        "Menoreh Hills and surrounding farmland",
					Location:    "Throughout the hotel",
					Description: "A serene sanctuary with panoramic views of the terraced gardens, a deep-soaking volcanic stone bathtub and a private sun-drenched terrace.",
					Image:       "https://images.unsplash.com/photo-1582719478250-c89cae4dc85b?auto=format&fit=crop&q=80&w=1200",
					NightlyRate: 1650,
					Inclusions: []string{
						"American Breakfast for two each day",
						"Flexible Cancellation before 1 week",
					},
				},
				{
					ID:          "suite-pool",
					Name:        "Garden Pool Suite",
					Size:        "243 sq.m / 2616 sq.ft",
					View:        "Views of the Menoreh Hills and farmland",
					Location:    "Throughout the resort",
					Description: "Perched for ultimate privacy with a heated plunge pool floating over the cliffs and a spa-inspired bathroom of hand-carved stone basins.",
					Image:       "https://images.unsplash.com/photo-1590490359683-658d3d23f972?auto=format&fit=crop&q=80&w=1200",
					NightlyRate: 1980,
					Inclusions: []string{
						"American Breakfast for two each day",
						"Private Pool Service",
						"Flexible Cancellation",
					},
				},
				{
					ID:          "suite-dalem",
					Name:        "Dalem Jiwo Suite (2 Bedrooms)",
					Size:        "1200 sq.m / 12917 sq.ft",
					View:        "Rice terrace, Menoreh Hills and Borobudur Temple",
					Location:    "Private setting to the side of the main resort",
					Description: "The estate's crown jewel: two grand master suites, a private 15m infinity pool, a dedicated butler's pantry and a central rotunda for private dining.",
					Image:       "https://images.unsplash.com/photo-1544124499-58912cbddaad?auto=format&fit=crop&q=80&w=1200",
					NightlyRate: 7850,
					Inclusions: []string{
						"Champagne on arrival",
						"Private Chef & Butler",
						"24/7 Priority Concierge",
					},
				},
			},
		},
	}
}
