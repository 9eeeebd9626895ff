package main

import (
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateThenPing_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pets.db")

	var cli struct {
		Migrate MigrateCmd `cmd:""`
		Ping    PingCmd    `cmd:""`
	}
	parser, err := kong.New(&cli, kong.Name("petcarectl"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)

	app := newAppContext("error")

	ctx, err := parser.Parse([]string{"migrate", "--driver", "sqlite", "--sqlite-path", path})
	require.NoError(t, err)
	require.NoError(t, ctx.Run(app))

	ctx, err = parser.Parse([]string{"ping", "--driver", "sqlite", "--sqlite-path", path})
	require.NoError(t, err)
	require.NoError(t, ctx.Run(app))
}

func TestMigrate_RejectsMemory(t *testing.T) {
	cmd := MigrateCmd{StorageFlags{Driver: "memory"}}
	err := cmd.Run(newAppContext("error"))
	assert.Error(t, err)
}
