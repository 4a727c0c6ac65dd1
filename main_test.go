package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_Structure(t *testing.T) {
	// Test that the CLI struct has the expected commands
	var cli CLI

	// This is a compile-time check - if the struct changes, this will fail
	_ = cli.Login
	_ = cli.Register
	_ = cli.Logout
	_ = cli.List
	_ = cli.Upload
	_ = cli.Delete
	_ = cli.Stream
	_ = cli.Dashboard
}

func TestKongParsing(t *testing.T) {
	var cli CLI

	assert.NotNil(t, kong.Must(&cli))
}

func TestKongParsing_Commands(t *testing.T) {
	testDir := t.TempDir()
	testFile := filepath.Join(testDir, "video.mp4")
	require.NoError(t, os.WriteFile(testFile, []byte("test"), 0644))

	testCases := []struct {
		name        string
		args        []string
		command     string
		expectError bool
	}{
		{name: "No arguments opens dashboard", args: []string{}, command: "dashboard"},
		{name: "Login with username", args: []string{"login", "--username", "alice"}, command: "login"},
		{name: "Login without username", args: []string{"login"}, expectError: true},
		{name: "Register", args: []string{"register", "--username", "bob", "--full-name", "Bob Builder"}, command: "register"},
		{name: "Register without full name", args: []string{"register", "--username", "bob"}, expectError: true},
		{name: "Logout", args: []string{"logout"}, command: "logout"},
		{name: "List with search", args: []string{"list", "--search", "holiday", "--json"}, command: "list"},
		{name: "Upload existing file", args: []string{"upload", testFile}, command: "upload <file>"},
		{name: "Upload with verify", args: []string{"upload", "--verify", testFile}, command: "upload <file>"},
		{name: "Upload missing file", args: []string{"upload", filepath.Join(testDir, "missing.mp4")}, expectError: true},
		{name: "Delete several", args: []string{"delete", "--yes", "a.mp4", "b.mp4"}, command: "delete <filenames>"},
		{name: "Delete with no files", args: []string{"delete"}, expectError: true},
		{name: "Stream", args: []string{"stream", "a.mp4"}, command: "stream <filename>"},
		{name: "Global api url", args: []string{"--api-url", "http://example.com/api", "list"}, command: "list"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var cli CLI
			parser := kong.Must(&cli)

			ctx, err := parser.Parse(tc.args)

			if tc.expectError {
				assert.Error(t, err, "args %v", tc.args)
				return
			}
			require.NoError(t, err, "args %v", tc.args)
			assert.True(t, strings.HasPrefix(ctx.Command(), tc.command), "got command %q", ctx.Command())
		})
	}
}

func TestKongParsing_APIURLFlag(t *testing.T) {
	var cli CLI
	parser := kong.Must(&cli)

	_, err := parser.Parse([]string{"--api-url", "http://example.com/api", "list"})
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/api", cli.APIURL)
}

func TestDeleteCmd_DefaultsToConfirmation(t *testing.T) {
	var cli CLI
	parser := kong.Must(&cli)

	_, err := parser.Parse([]string{"delete", "a.mp4"})
	require.NoError(t, err)
	assert.False(t, cli.Delete.Yes, "delete should ask for confirmation by default")
}
