package version

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// TestVersionStrings checks that Full carries the name and Short.
func TestVersionStrings(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, Short())
	require.True(t, strings.HasPrefix(Full(), Name+" "))
	require.Contains(t, Full(), Short())
}

// TestAttachCobraVersionCommand runs the attached subcommand.
func TestAttachCobraVersionCommand(t *testing.T) {
	t.Parallel()

	var (
		root = &cobra.Command{Use: Name}
		out  = new(bytes.Buffer)
	)

	AttachCobraVersionCommand(root)
	root.SetOut(out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	require.Equal(t, Full()+"\n", out.String())
	require.Equal(t, Short(), root.Version)
}
