//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAreaSelection(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready(), "Should render the first frame")

	require.NoError(t, tf.Press(KeyAreaSelect))
	require.True(t, tf.SeePlain("Area, rectangle mode, 0, 0"))

	require.NoError(t, tf.Press(KeyEnter, KeyRight, KeyDown))
	require.True(t, tf.SeePlain("1, 1, 4 cells"), "Moving with a corner set previews the rectangle")

	require.NoError(t, tf.Press(KeyEnter))
	require.True(t, tf.SeePlain("Selected 4 new cells, 4 total"))

	require.NoError(t, tf.Press(KeyCtrlS))
	require.True(t, tf.SeePlain("4 cells picked"), "Done hands the cells to the host")

	tf.Quit()
	require.NoError(t, tf.WaitForExit(2*time.Second))
}
