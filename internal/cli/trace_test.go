package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceCommand_Text(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTraceCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"add", "3", "4"})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "result: 7")
	assert.Contains(t, out, "step(s)")
	assert.Contains(t, out, "add")
}

func TestTraceCommand_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewTraceCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"add", "3", "4"})

	require.NoError(t, cmd.Execute())

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result TraceResult
	require.NoError(t, json.Unmarshal(raw, &result))

	assert.Equal(t, []string{"7"}, result.Tokens)
	assert.NotEmpty(t, result.Timeline)
	assert.Equal(t, result.Stats.TotalSteps, result.Stats.ShownSteps)
	assert.Equal(t, len(result.Timeline), result.Stats.ShownSteps)
}

func TestTraceCommand_OpFilter(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewTraceCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"add", "3", "4", "--op", "nothing-fires-with-this-name"})

	require.NoError(t, cmd.Execute())

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))

	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result TraceResult
	require.NoError(t, json.Unmarshal(raw, &result))

	assert.Empty(t, result.Timeline)
	assert.Zero(t, result.Stats.ShownSteps)
	assert.Positive(t, result.Stats.TotalSteps)
}

func TestTraceCommand_EvalFailureJSONIsSingleDocument(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewTraceCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"div", "4", "0"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	dec := json.NewDecoder(bytes.NewReader(buf.Bytes()))
	var resp Response
	require.NoError(t, dec.Decode(&resp))
	assert.False(t, dec.More(), "output must be exactly one JSON document")

	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_FATAL", resp.Error.Code)

	// The reduction timeline rides along as error details.
	details, ok := resp.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "timeline")
	assert.Contains(t, details, "stats")
}

func TestTraceCommand_EvalFailureStillPrintsTimeline(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTraceCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"div", "4", "0"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "E_FATAL")
}
