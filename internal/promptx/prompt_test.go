package promptx

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/authmaint/internal/common"
)

func stubTerminal(t *testing.T, interactive bool) {
	t.Helper()
	orig := isTerminal
	isTerminal = func(r io.Reader) bool { return interactive }
	t.Cleanup(func() { isTerminal = orig })
}

func TestConfirm_AssumeYesSkipsPrompt(t *testing.T) {
	var out bytes.Buffer
	err := Confirm(strings.NewReader(""), &out, "delete rows", true)
	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestConfirm_AcceptsYes(t *testing.T) {
	stubTerminal(t, true)

	var out bytes.Buffer
	err := Confirm(strings.NewReader("yes\n"), &out, "delete rows", false)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "delete rows")
}

func TestConfirm_RejectsAnythingElse(t *testing.T) {
	stubTerminal(t, true)

	var out bytes.Buffer
	err := Confirm(strings.NewReader("y\n"), &out, "delete rows", false)
	assert.ErrorIs(t, err, common.ErrorAborted)
}

func TestConfirm_EOFAborts(t *testing.T) {
	stubTerminal(t, true)

	var out bytes.Buffer
	err := Confirm(strings.NewReader(""), &out, "delete rows", false)
	assert.ErrorIs(t, err, common.ErrorAborted)
}

func TestConfirm_NonInteractiveRefused(t *testing.T) {
	stubTerminal(t, false)

	var out bytes.Buffer
	err := Confirm(strings.NewReader("yes\n"), &out, "delete rows", false)
	assert.ErrorIs(t, err, common.ErrorAborted)
}

func TestConfirm_ChecksInjectedReader(t *testing.T) {
	// no stub: the check must look at r itself, and a plain buffer is
	// never a terminal
	var out bytes.Buffer
	err := Confirm(strings.NewReader("yes\n"), &out, "delete rows", false)
	assert.ErrorIs(t, err, common.ErrorAborted)
}

func TestGetPassword_UsesSeam(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("hunter2"), nil }
	t.Cleanup(func() { readPassword = orig })

	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, []byte("hunter2"), pw)
	assert.Contains(t, out.String(), "Enter password")
}
