package termstyle

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pipebar-io/pipebar/internal/buildinfo"
)

func TestPrintVersion(t *testing.T) {
	var out bytes.Buffer
	PrintVersion(&out, "pipebard")

	text := out.String()
	require.Contains(t, text, "pipebard")
	require.Contains(t, text, buildinfo.Version)
	require.Contains(t, text, "Commit:")
	require.Contains(t, text, "OS/Arch:")
}
