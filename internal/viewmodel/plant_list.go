package viewmodel

import (
	"context"
	"sync"

	"github.com/thenoetrevino/sprout/internal/models"
	"github.com/thenoetrevino/sprout/internal/services/plant"
	"github.com/thenoetrevino/sprout/internal/stream"
)

const noGrowZone = -1

// PlantList backs the catalog screen, optionally filtered to one grow zone.
type PlantList struct {
	plants plant.Service
	shared *stream.Shared[[]*models.Plant]

	mu      sync.Mutex
	zone    int
	changed chan struct{} // closed when the filter changes
}

// NewPlantList creates an unfiltered catalog view-model.
func NewPlantList(plants plant.Service, opts ...Option) *PlantList {
	o := newOptions(opts)
	l := &PlantList{
		plants:  plants,
		zone:    noGrowZone,
		changed: make(chan struct{}),
	}
	l.shared = stream.NewShared(l.upstream, stream.WithGracePeriod[[]*models.Plant](o.grace))
	return l
}

// Plants subscribes to the catalog under the current filter.
func (l *PlantList) Plants() *stream.Subscription[[]*models.Plant] {
	return l.shared.Subscribe()
}

// SetGrowZoneNumber restricts the list to one grow zone.
func (l *PlantList) SetGrowZoneNumber(zone int) {
	l.setZone(zone)
}

// ClearGrowZoneNumber removes the grow zone filter.
func (l *PlantList) ClearGrowZoneNumber() {
	l.setZone(noGrowZone)
}

// IsFiltered reports whether a grow zone filter is set.
func (l *PlantList) IsFiltered() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.zone != noGrowZone
}

// GrowZoneNumber returns the active filter and whether there is one.
func (l *PlantList) GrowZoneNumber() (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.zone, l.zone != noGrowZone
}

// Close releases the continuous read.
func (l *PlantList) Close() {
	l.shared.Close()
}

func (l *PlantList) setZone(zone int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if zone == l.zone {
		return
	}
	l.zone = zone
	close(l.changed)
	l.changed = make(chan struct{})
}

func (l *PlantList) filter() (int, <-chan struct{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.zone, l.changed
}

// upstream follows the query for the current filter and switches queries
// whenever the filter changes.
func (l *PlantList) upstream(ctx context.Context) <-chan []*models.Plant {
	out := make(chan []*models.Plant)

	go func() {
		defer close(out)
		for {
			zone, changed := l.filter()

			queryCtx, cancel := context.WithCancel(ctx)
			var in <-chan []*models.Plant
			if zone == noGrowZone {
				in = l.plants.GetPlants(queryCtx)
			} else {
				in = l.plants.GetPlantsWithGrowZoneNumber(queryCtx, zone)
			}

			if !l.forward(ctx, in, changed, out) {
				cancel()
				return
			}
			cancel()
		}
	}()

	return out
}

// forward copies in to out until the filter changes (true) or the upstream
// ends (false).
func (l *PlantList) forward(ctx context.Context, in <-chan []*models.Plant, changed <-chan struct{}, out chan<- []*models.Plant) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case <-changed:
			return true
		case v, ok := <-in:
			if !ok {
				return false
			}
			select {
			case out <- v:
			case <-changed:
				return true
			case <-ctx.Done():
				return false
			}
		}
	}
}
