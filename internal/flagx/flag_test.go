package flagx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	args := []string{"-a", "http://localhost:8000", "-x", "ignored", "-c", "conf.json"}
	got := FilterArgs(args, []string{"-a", "-c"})
	require.Equal(t, []string{"-a", "http://localhost:8000", "-c", "conf.json"}, got)
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	args := []string{"--config=conf.json", "--other=zzz", "-a=http://api"}
	got := FilterArgs(args, []string{"--config", "-a"})
	require.Equal(t, []string{"--config=conf.json", "-a=http://api"}, got)
}

func TestFilterArgs_FlagWithoutValue(t *testing.T) {
	args := []string{"-v", "-a", "-c", "conf.json"}
	got := FilterArgs(args, []string{"-a", "-c"})
	// -a is followed by another flag, so it has no value of its own.
	require.Equal(t, []string{"-a", "-c", "conf.json"}, got)
}

func TestFilterArgs_Empty(t *testing.T) {
	got := FilterArgs(nil, []string{"-a"})
	require.NotNil(t, got)
	require.Empty(t, got)
}
