package viewmodel

import (
	"context"
	"sync"

	"github.com/thenoetrevino/sprout/internal/models"
	"github.com/thenoetrevino/sprout/internal/services/garden"
	"github.com/thenoetrevino/sprout/internal/stream"
)

// GardenRow is one planted plant with its watering state.
type GardenRow struct {
	*models.PlantAndGardenPlanting
	NeedsWater bool
}

// GardenPlantingList backs the "my garden" screen.
type GardenPlantingList struct {
	*writer

	gardens   garden.Service
	rows      *stream.Shared[[]GardenRow]
	closeOnce sync.Once
}

// NewGardenPlantingList creates the garden screen view-model.
func NewGardenPlantingList(gardens garden.Service, opts ...Option) *GardenPlantingList {
	o := newOptions(opts)

	project := func(gs []*models.PlantAndGardenPlanting) []GardenRow {
		now := o.now()
		rows := make([]GardenRow, len(gs))
		for i, g := range gs {
			rows[i] = GardenRow{PlantAndGardenPlanting: g, NeedsWater: g.NeedsWater(now)}
		}
		return rows
	}

	return &GardenPlantingList{
		writer:  newWriter(o),
		gardens: gardens,
		rows: stream.NewShared(
			func(ctx context.Context) <-chan []GardenRow {
				return mapStream(ctx, gardens.GetPlantedGardens(ctx), project)
			},
			stream.WithGracePeriod[[]GardenRow](o.grace),
		),
	}
}

// Plantings subscribes to the planted gardens, newest planting last.
func (vm *GardenPlantingList) Plantings() *stream.Subscription[[]GardenRow] {
	return vm.rows.Subscribe()
}

// Water records a watering for plantID in the background.
func (vm *GardenPlantingList) Water(plantID string) {
	vm.launch(func(ctx context.Context) garden.Result {
		return vm.gardens.WaterGardenPlanting(ctx, plantID)
	})
}

// Remove takes plantID out of the garden in the background.
func (vm *GardenPlantingList) Remove(plantID string) {
	vm.launch(func(ctx context.Context) garden.Result {
		return vm.gardens.RemoveGardenPlanting(ctx, plantID)
	})
}

// Close cancels in-flight writes and releases the continuous read.
func (vm *GardenPlantingList) Close() {
	vm.closeOnce.Do(func() {
		vm.writer.close()
		vm.rows.Close()
	})
}

// mapStream applies f to every value of in until ctx is done or in closes.
func mapStream[A, B any](ctx context.Context, in <-chan A, f func(A) B) <-chan B {
	out := make(chan B)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- f(v):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
