package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/sprout/internal/config"
	"github.com/thenoetrevino/sprout/internal/database"
	"github.com/thenoetrevino/sprout/internal/events"
	"github.com/thenoetrevino/sprout/internal/seed"
	"github.com/thenoetrevino/sprout/internal/testutil"
)

// feedPublisher delivers whatever the test pushes into feed to Listen.
type feedPublisher struct {
	testutil.RecordingPublisher
	feed chan events.Event
}

func newFeedPublisher() *feedPublisher {
	return &feedPublisher{feed: make(chan events.Event, 10)}
}

func (p *feedPublisher) Listen(ctx context.Context) (<-chan events.Event, error) {
	return p.feed, nil
}

func TestNew(t *testing.T) {
	db := testutil.SetupTestDB(t)

	app := New(db)

	require.NotNil(t, app)
	assert.NotNil(t, app.PlantService)
	assert.NotNil(t, app.GardenService)
	assert.NotNil(t, app.Unsplash)
	assert.NotNil(t, app.Repo())
	assert.NotNil(t, app.Config())
	assert.Nil(t, app.EventClient())
	assert.False(t, app.Unsplash.Configured())
}

func TestNew_UnsplashKeyFromConfig(t *testing.T) {
	db := testutil.SetupTestDB(t)

	app := New(db, WithConfig(&config.Config{UnsplashAccessKey: "key"}))

	assert.True(t, app.Unsplash.Configured())
}

func TestClose(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := New(db)

	assert.NoError(t, app.Close())
}

func TestSeedIfEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := New(db)
	ctx := context.Background()

	catalog, err := seed.LoadFile("")
	require.NoError(t, err)

	n, err := app.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(catalog), n)

	n, err = app.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "second run must not import anything")

	count, err := app.PlantService.CountPlants(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(catalog), count)
}

func TestTablesFor(t *testing.T) {
	assert.Equal(t, []string{database.TableGardenPlantings},
		tablesFor(events.Event{Type: events.EventGardenChanged}))
	assert.ElementsMatch(t, []string{database.TablePlants, database.TableGardenPlantings},
		tablesFor(events.Event{Type: events.EventPlantsChanged}))
	assert.Empty(t, tablesFor(events.Event{Type: events.EventPing}))
}

func TestListenForChanges_NoDaemon(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := New(db)

	assert.NoError(t, app.ListenForChanges(context.Background()))
}

func TestListenForChanges_NotifiesTracker(t *testing.T) {
	db := testutil.SetupTestDB(t)
	pub := newFeedPublisher()
	app := New(db, WithEventPublisher(pub))

	notified, cancel := app.Repo().Tracker().Subscribe(database.TableGardenPlantings)
	defer cancel()

	ctx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.ListenForChanges(ctx) }()

	pub.feed <- events.Event{Type: events.EventPing}
	pub.feed <- events.Event{Type: events.EventGardenChanged, PlantID: "tomato", SequenceID: 1}

	select {
	case <-notified:
	case <-time.After(time.Second):
		t.Fatal("tracker was not notified")
	}

	stop()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("ListenForChanges did not return after cancel")
	}
}

func TestListenForChanges_ClosedStream(t *testing.T) {
	db := testutil.SetupTestDB(t)
	pub := newFeedPublisher()
	app := New(db, WithEventPublisher(pub))

	close(pub.feed)

	assert.NoError(t, app.ListenForChanges(context.Background()))
}

// A write made through one container reaches another container's continuous
// query once the change event is delivered.
func TestListenForChanges_RemoteWriteReachesStream(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SeedTestPlants(t, db)

	writer := New(db)
	pub := newFeedPublisher()
	reader := New(db, WithEventPublisher(pub))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = reader.ListenForChanges(ctx) }()

	planted := reader.GardenService.IsPlanted(ctx, "tomato")
	require.False(t, <-planted)

	res := writer.GardenService.CreateGardenPlanting(ctx, "tomato")
	require.NoError(t, res.Err)

	pub.feed <- events.Event{Type: events.EventGardenChanged, PlantID: "tomato", SequenceID: 1}

	select {
	case v := <-planted:
		assert.True(t, v)
	case <-time.After(2 * time.Second):
		t.Fatal("reader never observed the remote planting")
	}
}

func TestListenForChanges_ThroughDaemon(t *testing.T) {
	server, socketPath := testutil.SetupTestDaemon(t)
	db := testutil.SetupTestDB(t)
	testutil.SeedTestPlants(t, db)

	writer := New(db, WithEventPublisher(testutil.ConnectTestClient(t, socketPath)))
	reader := New(db, WithEventPublisher(testutil.ConnectTestClient(t, socketPath)))

	require.Eventually(t, func() bool {
		return server.Metrics().Snapshot().ConnectedClients == 2
	}, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = reader.ListenForChanges(ctx) }()

	planted := reader.GardenService.IsPlanted(ctx, "basil")
	assert.False(t, <-planted)

	res := writer.GardenService.CreateGardenPlanting(ctx, "basil")
	require.NoError(t, res.Err)

	select {
	case v := <-planted:
		assert.True(t, v)
	case <-time.After(3 * time.Second):
		t.Fatal("remote write never reached the reader")
	}
}
