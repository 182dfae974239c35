//go:build e2e && unix

package main

import (
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	// Ensure the test binary exists (it should be built by TestMain)
	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		t.Skip("Test binary not found - TestMain may not have run yet")
	}

	// Test help command by running it directly (not through PTY since it exits quickly)
	cmd := exec.Command(binPath, "--help")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "Help command should run without error")

	output := string(out)
	require.Contains(t, output, "-config", "Help should list the config flag")
	require.Contains(t, output, "-log", "Help should list the log flag")
}

func TestHelpPopup(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready(), "Should render the first frame")

	require.NoError(t, tf.Press(KeyHelp))
	require.True(t, tf.SeePlain("accessnav Help"), "Help popup should open")
	require.True(t, tf.SeePlain("Area selection"), "Help should list surface keys")

	require.NoError(t, tf.Escape())
	require.True(t, tf.SeePlain("Help closed"), "Closing help is announced")

	tf.Quit()
	require.NoError(t, tf.WaitForExit(2*time.Second))
}
