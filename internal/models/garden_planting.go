package models

import "time"

// GardenPlanting records that a plant is currently in the user's garden.
// There is at most one planting per plant.
type GardenPlanting struct {
	ID               int
	PlantID          string
	PlantDate        time.Time
	LastWateringDate time.Time
}

// PlantAndGardenPlanting pairs a planted plant with its planting record.
type PlantAndGardenPlanting struct {
	Plant    *Plant
	Planting *GardenPlanting
}

// NeedsWater reports whether the planting is due for water at now.
func (p *PlantAndGardenPlanting) NeedsWater(now time.Time) bool {
	if p == nil || p.Plant == nil || p.Planting == nil {
		return false
	}
	return p.Plant.ShouldBeWatered(now, p.Planting.LastWateringDate)
}
