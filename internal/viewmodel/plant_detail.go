package viewmodel

import (
	"context"
	"sync"

	"github.com/thenoetrevino/sprout/internal/models"
	"github.com/thenoetrevino/sprout/internal/services/garden"
	"github.com/thenoetrevino/sprout/internal/services/plant"
	"github.com/thenoetrevino/sprout/internal/stream"
)

// PlantDetail backs one plant detail screen.
type PlantDetail struct {
	*writer

	plantID   string
	gardens   garden.Service
	isPlanted *stream.Shared[bool]
	plant     *stream.Shared[*models.Plant]
	closeOnce sync.Once
}

// NewPlantDetail binds a detail screen to plantID. Nothing is read until the
// first subscription.
func NewPlantDetail(plantID string, plants plant.Service, gardens garden.Service, opts ...Option) *PlantDetail {
	o := newOptions(opts)

	return &PlantDetail{
		writer:  newWriter(o),
		plantID: plantID,
		gardens: gardens,
		isPlanted: stream.NewShared(
			func(ctx context.Context) <-chan bool { return gardens.IsPlanted(ctx, plantID) },
			stream.WithInitial(false),
			stream.WithGracePeriod[bool](o.grace),
			stream.WithDistinct[bool](),
		),
		plant: stream.NewShared(
			func(ctx context.Context) <-chan *models.Plant { return plants.GetPlant(ctx, plantID) },
			stream.WithGracePeriod[*models.Plant](o.grace),
		),
	}
}

// PlantID returns the plant the screen is bound to.
func (vm *PlantDetail) PlantID() string {
	return vm.plantID
}

// IsPlanted subscribes to whether the plant is in the garden. The first value
// is false until the store has answered.
func (vm *PlantDetail) IsPlanted() *stream.Subscription[bool] {
	return vm.isPlanted.Subscribe()
}

// IsPlantedNow returns the latest known planted state.
func (vm *PlantDetail) IsPlantedNow() bool {
	v, _ := vm.isPlanted.Value()
	return v
}

// Plant subscribes to the catalog entry. It emits nil for an unknown id.
func (vm *PlantDetail) Plant() *stream.Subscription[*models.Plant] {
	return vm.plant.Subscribe()
}

// AddPlantToGarden plants the plant in the background and posts the outcome
// as a UI event.
func (vm *PlantDetail) AddPlantToGarden() {
	vm.launch(func(ctx context.Context) garden.Result {
		return vm.gardens.CreateGardenPlanting(ctx, vm.plantID)
	})
}

// RemovePlantFromGarden removes the plant in the background and posts the
// outcome as a UI event.
func (vm *PlantDetail) RemovePlantFromGarden() {
	vm.launch(func(ctx context.Context) garden.Result {
		return vm.gardens.RemoveGardenPlanting(ctx, vm.plantID)
	})
}

// Close cancels in-flight writes and releases the continuous reads.
func (vm *PlantDetail) Close() {
	vm.closeOnce.Do(func() {
		vm.writer.close()
		vm.isPlanted.Close()
		vm.plant.Close()
	})
}
