package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	_, stderr, err := runIntrovert(t, binaryPath, home, nil, "account", "add", "Alice")
	require.NoError(t, err, "stderr: %s", stderr)
	_, stderr, err = runIntrovert(t, binaryPath, home, nil, "account", "add", "Bob")
	require.NoError(t, err, "stderr: %s", stderr)

	env := []string{"INTROVERT_ISLAND=Bob", "INTROVERT_SWARM_JOIN_DELAY=0s"}

	stdout, stderr, err := runIntrovert(t, binaryPath, home, env, "plan")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "action: visit Bob")

	scripts := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(scripts, "Alice.jsonl"), []byte(
		`{"type":"chat","text":"{\"server\":\"mini1\",\"gametype\":\"SKYBLOCK\"}"}`+"\n",
	), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(scripts, "Bob.jsonl"), []byte(
		`{"type":"chat","text":"{\"server\":\"limbo\"}"}`+"\n",
	), 0o644))

	stdout, stderr, err = runIntrovert(t, binaryPath, home, env, "run", "--script-dir", scripts)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Alice\t/visit Bob\n")
	assert.Contains(t, stdout, "Bob\t/lobby\n")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "introvert-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/introvert")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build introvert binary: %s", string(output))
	return binaryPath
}

func runIntrovert(t *testing.T, binaryPath, home string, env []string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(append(os.Environ(), "HOME="+home), env...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
