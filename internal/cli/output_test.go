// output_test.go contains unit tests for the pure parsing and
// formatting helpers of the CLI commands.

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/cutrelease/internal/model"
	"github.com/mmr-tortoise/cutrelease/internal/release"
	"github.com/mmr-tortoise/cutrelease/internal/version"
)

// setJSONOutput toggles the --json global for one test.
func setJSONOutput(t *testing.T, on bool) {
	t.Helper()
	prev := jsonOutput
	jsonOutput = on
	t.Cleanup(func() { jsonOutput = prev })
}

func TestParseIntentFlag(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    version.Intent
		wantErr bool
	}{
		{name: "empty asks the operator", input: "", want: version.IntentUnset},
		{name: "name", input: "minor", want: version.IntentMinor},
		{name: "case insensitive", input: "MAJOR", want: version.IntentMajor},
		{name: "beta alias", input: "beta", want: version.IntentPreRelease},
		{name: "menu number", input: "3", want: version.IntentPatch},
		{name: "unknown", input: "huge", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIntentFlag(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, model.ExitGeneralError, model.ExitCodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseVersionArg(t *testing.T) {
	v, err := parseVersionArg("v1.2.0b1")
	require.NoError(t, err)
	assert.Equal(t, "1.2.0b1", v.String())

	v, err = parseVersionArg("2.0.0")
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", v.String())

	_, err = parseVersionArg("release/2.0.0")
	require.Error(t, err)
	assert.Equal(t, model.ExitInvalidVersion, model.ExitCodeOf(err))
}

func TestFormatRefs(t *testing.T) {
	assert.Equal(t, "-", formatRefs(nil))
	assert.Equal(t, "release/1.0.0b1, v1.0.0b1", formatRefs([]string{"release/1.0.0b1", "v1.0.0b1"}))
}

func testSession() *release.Session {
	return &release.Session{
		OriginalBranch: "dev",
		Intent:         version.IntentMinor,
		Previous:       version.MustParse("2.3.1"),
		Next:           version.MustParse("2.4.0"),
		ReleaseBranch:  "release/2.4.0",
		Tag:            "v2.4.0",
		TrunkAdvanced:  true,
		Pushed:         []string{"master", "release/2.4.0", "v2.4.0"},
		Outcome:        model.OutcomeCompleted,
	}
}

func TestPrintSession_Text(t *testing.T) {
	setJSONOutput(t, false)

	var buf bytes.Buffer
	printSession(&buf, testSession())

	out := buf.String()
	assert.Contains(t, out, "Released v2.4.0\n")
	assert.Contains(t, out, "Previous version: 2.3.1")
	assert.Contains(t, out, "Merged into trunk")
	assert.Contains(t, out, "master, release/2.4.0, v2.4.0")
	assert.Contains(t, out, "Checked out:      dev")
}

func TestPrintSession_JSON(t *testing.T) {
	setJSONOutput(t, true)

	var buf bytes.Buffer
	printSession(&buf, testSession())

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "minor", got["type"])
	assert.Equal(t, "2.3.1", got["previous"])
	assert.Equal(t, "2.4.0", got["next"])
	assert.Equal(t, "v2.4.0", got["tag"])
	assert.Equal(t, "completed", got["outcome"])
	assert.Equal(t, false, got["preRelease"])
}

func TestPrintPlan_PreRelease(t *testing.T) {
	setJSONOutput(t, false)

	s := &release.Session{
		Intent:        version.IntentPreRelease,
		Previous:      version.MustParse("1.0.0"),
		Next:          version.MustParse("1.0.0b1"),
		ReleaseBranch: "release/1.0.0b1",
		Tag:           "v1.0.0b1",
		PreRelease:    true,
	}

	var buf bytes.Buffer
	printPlan(&buf, s)

	out := buf.String()
	assert.Contains(t, out, "Next Pre-release release: 1.0.0b1")
	assert.Contains(t, out, "Tag:              v1.0.0b1")
	assert.Contains(t, out, "trunk is neither merged nor pushed")
}

func TestPrintError(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		setJSONOutput(t, false)
		var buf bytes.Buffer
		printError(&buf, "working tree has uncommitted changes", model.ErrDirtyWorkarea)
		assert.Equal(t, "Error: working tree has uncommitted changes: dirty workarea\n", buf.String())
	})

	t.Run("text without detail", func(t *testing.T) {
		setJSONOutput(t, false)
		var buf bytes.Buffer
		printError(&buf, "boom", nil)
		assert.Equal(t, "Error: boom\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		setJSONOutput(t, true)
		var buf bytes.Buffer
		printError(&buf, "git push failed", errors.New("exit status 1"))

		var got map[string]map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "git push failed", got["error"]["message"])
		assert.Equal(t, "exit status 1", got["error"]["detail"])
	})
}

func TestPrintCleanupResult(t *testing.T) {
	setJSONOutput(t, false)
	var buf bytes.Buffer
	printCleanupResult(&buf, "release/1.2.0b1")
	assert.Equal(t, "Deleted branch release/1.2.0b1\n", buf.String())
}

func TestNewRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"release", "next", "cleanup"}, names)

	for _, flag := range []string{"json", "verbose", "log-level", "config"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}
