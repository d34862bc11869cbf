package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validQuery = `{
  "groups": [{
    "conditions": [{"field1": "current_call_iv", "operator": "gt", "field2": "avg_90day_call_iv"}],
    "logicalOperator": "AND"
  }],
  "groupLogicalOperator": "AND",
  "limit": 10
}`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()

	return out.String(), err
}

func TestCompileCommand(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		args        []string
		placeholder string
	}{
		{
			name:        "postgres by default",
			args:        []string{"compile"},
			placeholder: "$1",
		},
		{
			name:        "mysql dialect",
			args:        []string{"compile", "--dialect", "mysql"},
			placeholder: "?",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, validQuery, tc.args...)
			require.NoError(t, err)

			var got compiledStatement
			require.NoError(t, json.Unmarshal([]byte(out), &got))

			assert.Contains(t, got.SQL, model.MarketSummaryTable)
			assert.Contains(t, got.SQL, tc.placeholder)
			assert.Equal(t, string(model.FieldAvg90DayCallIV), got.ComparisonField)
			assert.NotEmpty(t, got.Params)
		})
	}
}

func TestCompileCommand_ReadsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "query.json")
	require.NoError(t, os.WriteFile(path, []byte(validQuery), 0o600))

	out, err := execute(t, "", "compile", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"dialect": "postgres"`)
}

func TestCompileCommand_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		stdin string
		args  []string
		isErr error
	}{
		{
			name:  "invalid query",
			stdin: `{"groups": []}`,
			args:  []string{"compile"},
			isErr: model.ErrInvalidQuery,
		},
		{
			name:  "unsupported dialect",
			stdin: validQuery,
			args:  []string{"compile", "--dialect", "oracle"},
		},
		{
			name:  "malformed json",
			stdin: `{`,
			args:  []string{"compile"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := execute(t, tc.stdin, tc.args...)
			require.Error(t, err)

			if tc.isErr != nil {
				assert.ErrorIs(t, err, tc.isErr)
			}
		})
	}
}

func TestValidateCommand(t *testing.T) {
	t.Parallel()

	t.Run("valid query", func(t *testing.T) {
		t.Parallel()

		out, err := execute(t, validQuery, "validate")
		require.NoError(t, err)

		var got model.ValidationResult
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.True(t, got.Valid)
		assert.Empty(t, got.Errors)
	})

	t.Run("query without groups", func(t *testing.T) {
		t.Parallel()

		out, err := execute(t, `{"groups": []}`, "validate")
		require.ErrorIs(t, err, errInvalidQuery)

		var got model.ValidationResult
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.False(t, got.Valid)
		assert.Contains(t, got.Errors, model.MsgNoGroups)
	})
}

func TestSeedCommand_RequiresConfirmation(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "seed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
}
