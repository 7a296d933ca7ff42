package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAnswers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"3": [0, 2], "4": "func main() {}"}`), 0o600))

	answers, err := readAnswers(path)
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.JSONEq(t, `[0,2]`, string(answers[3]))
	assert.JSONEq(t, `"func main() {}"`, string(answers[4]))
}

func TestReadAnswers_Errors(t *testing.T) {
	dir := t.TempDir()
	badKey := filepath.Join(dir, "bad-key.json")
	require.NoError(t, os.WriteFile(badKey, []byte(`{"q1": 0}`), 0o600))
	notObject := filepath.Join(dir, "list.json")
	require.NoError(t, os.WriteFile(notObject, []byte(`[0]`), 0o600))

	_, err := readAnswers(badKey)
	assert.ErrorContains(t, err, "not a question id")
	_, err = readAnswers(notObject)
	assert.Error(t, err)
	_, err = readAnswers(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	empty, err := readAnswers("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
