package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()

	list, _, err := root.Find([]string{"list"})
	require.NoError(t, err)
	assert.Equal(t, "list", list.Name())
	for _, name := range []string{"keyword", "where", "filter", "page", "size", "output"} {
		assert.NotNil(t, list.Flags().Lookup(name), "list --%s", name)
	}
	assert.Equal(t, "table", list.Flags().Lookup("output").DefValue)

	demo, _, err := root.Find([]string{"demo"})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", demo.Flags().Lookup("addr").DefValue)

	for _, name := range []string{"config", "prefs", "api", "route", "poll"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), "--%s", name)
	}
}

func TestListRequiresResource(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"list"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestRootRejectsArguments(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"residents"})

	require.Error(t, root.Execute())
}
