package plant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sproutcli "github.com/thenoetrevino/sprout/internal/cli"
	"github.com/thenoetrevino/sprout/internal/testutil/cli"
)

func TestListPlants(t *testing.T) {
	_, app := cli.SetupCLITest(t)

	t.Run("human readable", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), nil)
		require.NoError(t, err)
		assert.Contains(t, output, "Found 3 plants")
		assert.Contains(t, output, "[tomato] Tomato (zone 9, water every 3 days)")
	})

	t.Run("quiet prints ids in name order", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--quiet"})
		require.NoError(t, err)
		assert.Equal(t, []string{"basil", "sunflower", "tomato"}, strings.Fields(output))
	})

	t.Run("zone filter", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--zone", "9", "--quiet"})
		require.NoError(t, err)
		assert.Equal(t, []string{"sunflower", "tomato"}, strings.Fields(output))
	})

	t.Run("json", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--zone", "10", "--json"})
		require.NoError(t, err)

		result := cli.ParseJSON(t, output)
		assert.Equal(t, true, result["success"])
		data := result["data"].(map[string]interface{})
		assert.Equal(t, float64(10), data["zone"])
		plants := data["plants"].([]interface{})
		require.Len(t, plants, 1)
		assert.Equal(t, "basil", plants[0].(map[string]interface{})["plantId"])
	})

	t.Run("empty zone", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--zone", "2"})
		require.NoError(t, err)
		assert.Contains(t, output, "No plants found for grow zone 2")
	})
}

func TestListPlants_InvalidZone(t *testing.T) {
	_, app := cli.SetupCLITest(t)

	output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--zone", "14", "--json"})

	require.Error(t, err)
	assert.Equal(t, sproutcli.ExitValidation, sproutcli.ExitCode(err))
	result := cli.ParseJSON(t, output)
	assert.Equal(t, false, result["success"])
	assert.Equal(t, "VALIDATION_ERROR", result["error"].(map[string]interface{})["code"])
}

func TestShowPlant(t *testing.T) {
	_, app := cli.SetupCLITest(t)

	t.Run("not planted", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"tomato"})
		require.NoError(t, err)
		assert.Contains(t, output, "Tomato [tomato]")
		assert.Contains(t, output, "Not in your garden")
		assert.Contains(t, output, "A *juicy* fruit.")
	})

	t.Run("planted", func(t *testing.T) {
		require.NoError(t, app.GardenService.CreateGardenPlanting(t.Context(), "basil").Err)

		output, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"basil", "--json"})
		require.NoError(t, err)

		data := cli.ParseJSON(t, output)["data"].(map[string]interface{})
		assert.Equal(t, true, data["planted"])
		assert.NotNil(t, data["planting"])
	})

	t.Run("quiet", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"sunflower", "--quiet"})
		require.NoError(t, err)
		assert.Equal(t, "sunflower", strings.TrimSpace(output))
	})
}

func TestShowPlant_Errors(t *testing.T) {
	_, app := cli.SetupCLITest(t)

	t.Run("unknown plant", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"cactus"})
		require.Error(t, err)
		assert.Equal(t, sproutcli.ExitNotFound, sproutcli.ExitCode(err))
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, ShowCmd(), nil)
		require.Error(t, err)
		assert.Equal(t, sproutcli.ExitUsage, sproutcli.ExitCode(err))
	})
}

func TestPlantCmd_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range PlantCmd().Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["list"])
	assert.True(t, names["show"])
}
