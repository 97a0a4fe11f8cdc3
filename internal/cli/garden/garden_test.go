package garden

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sproutcli "github.com/thenoetrevino/sprout/internal/cli"
	"github.com/thenoetrevino/sprout/internal/models"
	"github.com/thenoetrevino/sprout/internal/testutil/cli"
)

func TestAdd(t *testing.T) {
	db, app := cli.SetupCLITest(t)

	output, err := cli.ExecuteCLICommand(t, app, AddCmd(), []string{"tomato"})
	require.NoError(t, err)
	assert.Equal(t, "Planted tomato", strings.TrimSpace(output))
	assert.Equal(t, 1, cli.CountPlantings(t, db, "tomato"))
}

func TestAdd_Twice(t *testing.T) {
	db, app := cli.SetupCLITest(t)

	for i := 0; i < 2; i++ {
		output, err := cli.ExecuteCLICommand(t, app, AddCmd(), []string{"tomato", "--json"})
		require.NoError(t, err)
		data := cli.ParseJSON(t, output)["data"].(map[string]interface{})
		assert.Equal(t, "PLANTED", data["action"])
		assert.Equal(t, true, data["planted"])
	}

	assert.Equal(t, 1, cli.CountPlantings(t, db, "tomato"))
}

func TestAdd_UnknownPlant(t *testing.T) {
	db, app := cli.SetupCLITest(t)

	output, err := cli.ExecuteCLICommand(t, app, AddCmd(), []string{"cactus", "--json"})

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrPlantNotFound)
	assert.Equal(t, sproutcli.ExitNotFound, sproutcli.ExitCode(err))
	assert.Equal(t, "PLANT_NOT_FOUND", cli.ParseJSON(t, output)["error"].(map[string]interface{})["code"])
	assert.Zero(t, cli.CountPlantings(t, db, "cactus"))
}

func TestRemove(t *testing.T) {
	db, app := cli.SetupCLITest(t)
	require.NoError(t, app.GardenService.CreateGardenPlanting(context.Background(), "basil").Err)

	output, err := cli.ExecuteCLICommand(t, app, RemoveCmd(), []string{"basil", "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "basil", strings.TrimSpace(output))
	assert.Zero(t, cli.CountPlantings(t, db, "basil"))
}

func TestRemove_NotPlantedSucceeds(t *testing.T) {
	_, app := cli.SetupCLITest(t)

	output, err := cli.ExecuteCLICommand(t, app, RemoveCmd(), []string{"tomato"})

	require.NoError(t, err)
	assert.Equal(t, "Removed tomato from your garden", strings.TrimSpace(output))
}

func TestWater(t *testing.T) {
	_, app := cli.SetupCLITest(t)

	t.Run("not planted", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, WaterCmd(), []string{"sunflower"})
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrNotPlanted)
		assert.Equal(t, sproutcli.ExitNotFound, sproutcli.ExitCode(err))
	})

	t.Run("planted", func(t *testing.T) {
		require.NoError(t, app.GardenService.CreateGardenPlanting(context.Background(), "sunflower").Err)

		output, err := cli.ExecuteCLICommand(t, app, WaterCmd(), []string{"sunflower"})
		require.NoError(t, err)
		assert.Equal(t, "Watered sunflower", strings.TrimSpace(output))
	})
}

func TestWrite_MissingID(t *testing.T) {
	_, app := cli.SetupCLITest(t)

	_, err := cli.ExecuteCLICommand(t, app, AddCmd(), nil)

	require.Error(t, err)
	assert.Equal(t, sproutcli.ExitUsage, sproutcli.ExitCode(err))
}

func TestList(t *testing.T) {
	_, app := cli.SetupCLITest(t)

	t.Run("empty", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), nil)
		require.NoError(t, err)
		assert.Equal(t, "Your garden is empty", strings.TrimSpace(output))
	})

	require.NoError(t, app.GardenService.CreateGardenPlanting(context.Background(), "tomato").Err)
	require.NoError(t, app.GardenService.CreateGardenPlanting(context.Background(), "basil").Err)

	t.Run("quiet", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--quiet"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"tomato", "basil"}, strings.Fields(output))
	})

	t.Run("watering due", func(t *testing.T) {
		// Basil wants water every 2 days
		now = func() time.Time { return time.Now().AddDate(0, 0, 5) }
		t.Cleanup(func() { now = time.Now })

		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--json"})
		require.NoError(t, err)

		data := cli.ParseJSON(t, output)["data"].(map[string]interface{})
		rows := data["plantings"].([]interface{})
		require.Len(t, rows, 2)
		for _, r := range rows {
			row := r.(map[string]interface{})
			assert.Equal(t, true, row["needs_water"], "plant %v", row["plant_id"])
		}
	})
}

func TestWatch_CurrentState(t *testing.T) {
	_, app := cli.SetupCLITest(t)
	require.NoError(t, app.GardenService.CreateGardenPlanting(context.Background(), "tomato").Err)

	output, err := cli.ExecuteCLICommand(t, app, WatchCmd(), []string{"tomato", "--count", "1"})
	require.NoError(t, err)
	assert.Equal(t, "tomato: planted", strings.TrimSpace(output))

	output, err = cli.ExecuteCLICommand(t, app, WatchCmd(), []string{"basil", "--count", "1", "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "false", strings.TrimSpace(output))

	output, err = cli.ExecuteCLICommand(t, app, WatchCmd(), []string{"basil", "--count", "1", "--json"})
	require.NoError(t, err)
	result := cli.ParseJSON(t, output)
	assert.Equal(t, "basil", result["plant_id"])
	assert.Equal(t, false, result["planted"])
}

func TestWatch_FollowsWrites(t *testing.T) {
	_, app := cli.SetupCLITest(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go func() {
		for app.Repo().Tracker().ObserverCount() == 0 {
			time.Sleep(5 * time.Millisecond)
		}
		time.Sleep(50 * time.Millisecond)
		app.GardenService.CreateGardenPlanting(context.Background(), "tomato")
	}()

	output, err := cli.ExecuteCLICommandWithContext(t, ctx, app, WatchCmd(), []string{"tomato", "--count", "2"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	assert.Equal(t, "tomato: planted", lines[len(lines)-1])
}

func TestWatch_UnknownPlant(t *testing.T) {
	_, app := cli.SetupCLITest(t)

	_, err := cli.ExecuteCLICommand(t, app, WatchCmd(), []string{"cactus", "--count", "1"})

	require.Error(t, err)
	assert.Equal(t, sproutcli.ExitNotFound, sproutcli.ExitCode(err))
}
