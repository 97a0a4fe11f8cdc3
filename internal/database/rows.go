package database

import (
	"database/sql"

	"github.com/thenoetrevino/sprout/internal/models"
)

// plantRow mirrors a row of the plants table.
type plantRow struct {
	ID               string
	Name             string
	Description      sql.NullString
	GrowZoneNumber   int64
	WateringInterval int64
	ImageURL         sql.NullString
}

// gardenPlantingRow mirrors a row of the garden_plantings table.
type gardenPlantingRow struct {
	ID               int64
	PlantID          string
	PlantDate        sql.NullTime
	LastWateringDate sql.NullTime
}

// plantedGardenRow is one row of the plants/garden_plantings join.
type plantedGardenRow struct {
	Plant    plantRow
	Planting gardenPlantingRow
}

const plantColumns = `p.id, p.name, p.description, p.grow_zone_number, p.watering_interval, p.image_url`

const gardenPlantingColumns = `g.id, g.plant_id, g.plant_date, g.last_watering_date`

type scanner interface {
	Scan(dest ...any) error
}

func scanPlantRow(s scanner) (plantRow, error) {
	var row plantRow
	err := s.Scan(&row.ID, &row.Name, &row.Description, &row.GrowZoneNumber, &row.WateringInterval, &row.ImageURL)
	return row, err
}

func scanGardenPlantingRow(s scanner) (gardenPlantingRow, error) {
	var row gardenPlantingRow
	err := s.Scan(&row.ID, &row.PlantID, &row.PlantDate, &row.LastWateringDate)
	return row, err
}

func scanPlantedGardenRow(s scanner) (plantedGardenRow, error) {
	var row plantedGardenRow
	err := s.Scan(
		&row.Plant.ID, &row.Plant.Name, &row.Plant.Description,
		&row.Plant.GrowZoneNumber, &row.Plant.WateringInterval, &row.Plant.ImageURL,
		&row.Planting.ID, &row.Planting.PlantID, &row.Planting.PlantDate, &row.Planting.LastWateringDate,
	)
	return row, err
}

func toPlantModel(row plantRow) *models.Plant {
	return &models.Plant{
		ID:               row.ID,
		Name:             row.Name,
		Description:      NullStringToString(row.Description),
		GrowZoneNumber:   int(row.GrowZoneNumber),
		WateringInterval: int(row.WateringInterval),
		ImageURL:         NullStringToString(row.ImageURL),
	}
}

func toPlantModels(rows []plantRow) []*models.Plant {
	plants := make([]*models.Plant, len(rows))
	for i, row := range rows {
		plants[i] = toPlantModel(row)
	}
	return plants
}

func toGardenPlantingModel(row gardenPlantingRow) *models.GardenPlanting {
	return &models.GardenPlanting{
		ID:               int(row.ID),
		PlantID:          row.PlantID,
		PlantDate:        NullTimeToTime(row.PlantDate),
		LastWateringDate: NullTimeToTime(row.LastWateringDate),
	}
}

func toPlantedGardenModels(rows []plantedGardenRow) []*models.PlantAndGardenPlanting {
	gardens := make([]*models.PlantAndGardenPlanting, len(rows))
	for i, row := range rows {
		gardens[i] = &models.PlantAndGardenPlanting{
			Plant:    toPlantModel(row.Plant),
			Planting: toGardenPlantingModel(row.Planting),
		}
	}
	return gardens
}
