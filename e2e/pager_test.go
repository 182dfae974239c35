//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTranscriptPager(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready(), "Should render the first frame")

	require.NoError(t, tf.Press(KeyInventory, KeyDown, KeyCtrlT))

	// Assert on real pager bytes (normalized)
	require.True(t, tf.OutputContainsPlain("accessnav ready", 3*time.Second), "Transcript starts with the greeting")
	require.True(t, tf.OutputContainsPlain("normal  Car, 2 of 5", 3*time.Second), "Transcript lists announcements with priority")

	// Quit pager and ensure TUI again
	tf.Snapshot()
	tf.Quit()
	require.True(t, tf.SeePlain("Inventory"), "Should return to main TUI after closing pager")

	require.NoError(t, tf.SendCtrlC())
	require.NoError(t, tf.WaitForExit(2*time.Second))
}
