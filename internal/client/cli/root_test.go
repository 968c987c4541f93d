package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpText_CoversDispatchTable(t *testing.T) {
	authenticated := helpText(true)
	for _, cmd := range []string{
		"whoami", "profile", "threads", "thread", "post", "comment",
		"events", "event", "rsvp", "projects", "project", "submit",
		"resources", "resource", "tokens", "logout", "exit", "quit",
	} {
		require.Contains(t, authenticated, cmd)
	}
	require.NotContains(t, authenticated, "register")

	anonymous := helpText(false)
	for _, cmd := range []string{
		"register", "login", "tokens", "threads", "thread",
		"events", "event", "projects", "project",
		"resources", "resource", "exit", "quit",
	} {
		require.Contains(t, anonymous, cmd)
	}
	for _, cmd := range []string{"whoami", "logout", "post", "rsvp", "submit"} {
		require.False(t, strings.Contains(anonymous, cmd), "anonymous help should not list %s", cmd)
	}
}
