package handler

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/sprout/internal/cli"
	"github.com/thenoetrevino/sprout/internal/services/plant"
)

// createTestCommand creates a cobra.Command carrying the flags sprout uses
func createTestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use: "test",
		Run: func(cmd *cobra.Command, args []string) {},
	}
	cmd.Flags().Int("zone", 0, "")
	cmd.Flags().String("file", "", "")
	cli.AddOutputFlags(cmd)
	return cmd
}

func TestParsePlantID(t *testing.T) {
	t.Parallel()

	id, err := ParsePlantID([]string{" tomato "})
	require.NoError(t, err)
	assert.Equal(t, "tomato", id)

	for _, args := range [][]string{nil, {"  "}} {
		_, err := ParsePlantID(args)
		assert.ErrorIs(t, err, ErrMissingPlantID)
		assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
	}
}

func TestParseZone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    int
		wantOK  bool
		wantErr error
	}{
		{name: "not set", args: nil},
		{name: "valid zone", args: []string{"--zone", "9"}, want: 9, wantOK: true},
		{name: "lowest zone", args: []string{"--zone", "1"}, want: 1, wantOK: true},
		{name: "zero", args: []string{"--zone", "0"}, wantErr: plant.ErrInvalidGrowZone},
		{name: "too high", args: []string{"--zone", "14"}, wantErr: plant.ErrInvalidGrowZone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cmd := createTestCommand()
			require.NoError(t, cmd.ParseFlags(tt.args))

			zone, ok, err := NewFlagParser(cmd).ParseZone("zone")
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, zone)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestParseStringOptional(t *testing.T) {
	t.Parallel()

	cmd := createTestCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--file", " plants.json "}))

	value, err := NewFlagParser(cmd).ParseStringOptional("file")
	require.NoError(t, err)
	assert.Equal(t, "plants.json", value)

	_, err = NewFlagParser(cmd).ParseStringOptional("missing")
	assert.Error(t, err)
}

func TestOutputFormats(t *testing.T) {
	t.Parallel()

	cmd := createTestCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--json"}))

	jsonOutput, quiet, err := NewFlagParser(cmd).OutputFormats()
	require.NoError(t, err)
	assert.True(t, jsonOutput)
	assert.False(t, quiet)
}

func TestArguments(t *testing.T) {
	t.Parallel()

	cmd := createTestCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--zone", "3", "--quiet"}))

	args := &Arguments{Flags: parseFlagsToMap(cmd), Args: []string{"basil"}, cmd: cmd}

	assert.Equal(t, 3, args.GetInt("zone", 0))
	assert.True(t, args.GetBool("quiet"))
	assert.False(t, args.GetBool("json"))
	assert.Equal(t, "fallback", args.GetString("file", "fallback"))
	assert.True(t, args.IsSet("zone"))
	assert.False(t, args.IsSet("file"))
	assert.Equal(t, "basil", args.Arg(0))
	assert.Equal(t, "", args.Arg(1))
	assert.Same(t, cmd, args.GetCmd())
}
