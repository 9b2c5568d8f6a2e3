package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/go-gum/dynmsg/internal/testschema"
)

func writeDescriptor(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.pb")
	require.NoError(t, os.WriteFile(path, testschema.Bytes(), 0600))

	return path
}

func TestRun_Decode(t *testing.T) {
	t.Parallel()

	descriptor := writeDescriptor(t)
	stdin := strings.NewReader(`{"number": 1, "text": "foo", "repeated_number": [1, 2], "msg": {"foo": 123}}`)
	out := &bytes.Buffer{}

	err := run(out, &bytes.Buffer{}, stdin, []string{"decode", "-descriptor", descriptor, "-type", "fixture.MessageFixture"})
	require.NoError(t, err)

	var printed map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &printed))
	require.Equal(t, map[string]any{
		"number":          1.0,
		"text":            "foo",
		"repeated_number": []any{1.0, 2.0},
		"msg":             map[string]any{"foo": 123.0},
	}, printed)
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}

	err := run(out, &bytes.Buffer{}, strings.NewReader(""), []string{"-h"})
	require.NoError(t, err)
	require.Contains(t, out.String(), "Usage:")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, strings.NewReader(""), []string{"decode", "--this-is-not-a-valid-flag"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_DecodeError(t *testing.T) {
	t.Parallel()

	descriptor := writeDescriptor(t)
	stdin := strings.NewReader(`{"text": "foo"}`)

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, stdin, []string{"decode", "-descriptor", descriptor, "-type", "fixture.MessageFixture"})
	require.Error(t, err)
	require.Contains(t, err.Error(), `missing field "number"`)
}
