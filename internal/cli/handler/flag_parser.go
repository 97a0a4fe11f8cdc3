// Package handler provides flag parsing utilities
package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/sprout/internal/cli"
	"github.com/thenoetrevino/sprout/internal/services/plant"
)

// ErrMissingPlantID is returned when a command needs a plant id argument.
var ErrMissingPlantID = errors.New("a plant id is required")

// FlagParser provides common flag extraction patterns
type FlagParser struct {
	cmd *cobra.Command
}

// NewFlagParser creates a new flag parser
func NewFlagParser(cmd *cobra.Command) *FlagParser {
	return &FlagParser{cmd: cmd}
}

// ParsePlantID returns the first positional argument as a plant id.
func ParsePlantID(args []string) (string, error) {
	if len(args) == 0 {
		return "", cli.Exit(cli.ExitUsage, ErrMissingPlantID)
	}
	id := strings.TrimSpace(args[0])
	if id == "" {
		return "", cli.Exit(cli.ExitUsage, ErrMissingPlantID)
	}
	return id, nil
}

// ParseZone extracts an optional grow zone flag. ok is false when the flag
// was not given.
func (p *FlagParser) ParseZone(flagName string) (zone int, ok bool, err error) {
	if !p.cmd.Flags().Changed(flagName) {
		return 0, false, nil
	}
	zone, err = p.cmd.Flags().GetInt(flagName)
	if err != nil {
		return 0, false, fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	if err := plant.ValidateGrowZone(zone); err != nil {
		return 0, false, err
	}
	return zone, true, nil
}

// ParseStringOptional extracts an optional string flag
func (p *FlagParser) ParseStringOptional(flagName string) (string, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	return strings.TrimSpace(value), nil
}

// ParseIntOptional extracts an optional int flag
func (p *FlagParser) ParseIntOptional(flagName string) (int, error) {
	return p.cmd.Flags().GetInt(flagName)
}

// OutputFormats extracts JSON and Quiet output flags
func (p *FlagParser) OutputFormats() (jsonOutput bool, quietMode bool, err error) {
	jsonOutput, err = p.cmd.Flags().GetBool("json")
	if err != nil {
		return false, false, fmt.Errorf("failed to parse json flag: %w", err)
	}

	quietMode, err = p.cmd.Flags().GetBool("quiet")
	if err != nil {
		return false, false, fmt.Errorf("failed to parse quiet flag: %w", err)
	}

	return jsonOutput, quietMode, nil
}
