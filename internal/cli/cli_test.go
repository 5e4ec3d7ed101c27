package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_GridFlag(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"-grid", "grids/", "-product", "-log-level", "debug"}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)
	require.Equal(t, "grids/", cfg.GridPath)
	require.True(t, cfg.Product)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
}

func TestParse_ShorthandAndPositional(t *testing.T) {
	var out bytes.Buffer
	cfg, _, err := Parse([]string{"-g", "short.hcl"}, &out)
	require.NoError(t, err)
	require.Equal(t, "short.hcl", cfg.GridPath)

	cfg, _, err = Parse([]string{"positional.hcl"}, &out)
	require.NoError(t, err)
	require.Equal(t, "positional.hcl", cfg.GridPath)

	// -grid wins over the positional argument.
	cfg, _, err = Parse([]string{"-grid", "flagged.hcl", "positional.hcl"}, &out)
	require.NoError(t, err)
	require.Equal(t, "flagged.hcl", cfg.GridPath)
}

func TestParse_NoPathPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{}, &out)
	require.NoError(t, err)
	require.True(t, shouldExit)
	require.Nil(t, cfg)
	require.Contains(t, out.String(), "Usage:")
}

func TestParse_HelpFlag(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"-h"}, &out)
	require.NoError(t, err)
	require.True(t, shouldExit)
	require.Nil(t, cfg)
}

func TestParse_NamePattern(t *testing.T) {
	var out bytes.Buffer
	cfg, _, err := Parse([]string{"-grid", "g.hcl", "-name-pattern", "{base_name}/{count}"}, &out)
	require.NoError(t, err)
	require.Equal(t, "{base_name}/{count}", cfg.NamePattern)
}

func TestParse_InvalidLogFormat(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-grid", "g.hcl", "-log-format", "xml"}, &out)
	exitErr, ok := err.(*ExitError)
	require.True(t, ok, "expected *ExitError, got %T", err)
	require.Equal(t, 2, exitErr.Code)
	require.True(t, strings.Contains(exitErr.Message, "log-format"))
}

func TestParse_InvalidLogLevel(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-grid", "g.hcl", "-log-level", "loud"}, &out)
	exitErr, ok := err.(*ExitError)
	require.True(t, ok, "expected *ExitError, got %T", err)
	require.Equal(t, 2, exitErr.Code)
}

func TestParse_UnknownFlag(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-bogus"}, &out)
	exitErr, ok := err.(*ExitError)
	require.True(t, ok, "expected *ExitError, got %T", err)
	require.Equal(t, 2, exitErr.Code)
}
