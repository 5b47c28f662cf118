package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		configFile = ""
		showContents = false
		zoo = nil
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "zoo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRootCommand_Demo(t *testing.T) {
	path := writeConfig(t, "log:\n  level: error\n")

	out, err := execute(t, "demo", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "Error: create animal - name is missing.\n", out)
}

func TestRootCommand_DemoShowContents(t *testing.T) {
	path := writeConfig(t, "log:\n  level: error\n")

	out, err := execute(t, "demo", "--show", "--config", path)
	require.NoError(t, err)
	assert.Equal(t,
		"Error: create animal - name is missing.\nAnimal: Lion (Predator)\nAnimal: Zebra\n",
		out,
	)
}

func TestRootCommand_SymmetricDemo(t *testing.T) {
	path := writeConfig(t, "admission:\n  symmetric_mixing: true\nlog:\n  level: error\n")

	out, err := execute(t, "--config", path)
	require.NoError(t, err)
	assert.Equal(t,
		"Error: add a predator to a cage with non-predators.\n"+
			"Error: create animal - name is missing.\n",
		out,
	)
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	path := writeConfig(t, "zoo:\n  cage_capacity: 0\n")

	_, err := execute(t, "demo", "--config", path)
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "zoo "+Version+"\n", out)
}
