// Package models holds the domain types shared by every layer
package models

import "time"

// DefaultWateringInterval is used when a plant record does not specify one.
const DefaultWateringInterval = 7

// Plant is a catalog entry. Plants are seeded once and never edited afterwards.
type Plant struct {
	ID               string `json:"plantId" validate:"required"`
	Name             string `json:"name" validate:"required"`
	Description      string `json:"description"`
	GrowZoneNumber   int    `json:"growZoneNumber" validate:"gte=1,lte=13"`
	WateringInterval int    `json:"wateringInterval" validate:"gte=1"` // days between waterings
	ImageURL         string `json:"imageUrl" validate:"omitempty,url"`
}

// ShouldBeWatered reports whether the plant is due for water at since, given
// the last time it was watered.
func (p *Plant) ShouldBeWatered(since, lastWatering time.Time) bool {
	interval := p.WateringInterval
	if interval <= 0 {
		interval = DefaultWateringInterval
	}
	return since.After(lastWatering.AddDate(0, 0, interval))
}

func (p *Plant) String() string {
	return p.Name
}
