package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/introvert/internal/domain"
	"github.com/bnema/introvert/internal/version"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionPrintsBuildVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", stdout)
}

func TestPlanRendersTargets(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home))
	t.Setenv("INTROVERT_ISLAND", "bob")

	stdout, _, err := executeCLI(t, home, "plan")
	require.NoError(t, err)
	assert.Contains(t, stdout, "destination: bob")
	assert.Contains(t, stdout, "accounts: 2")
	assert.Contains(t, stdout, "action: visit bob")
	assert.Contains(t, stdout, "action: warp island")
	assert.NotContains(t, stdout, "is not one of the configured accounts")
}

func TestPlanIncludesEnvironmentAccounts(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home))
	t.Setenv("INTROVERT_ISLAND", "Bob")
	t.Setenv("INTROVERT_ACCOUNT_1", "Carol")
	t.Setenv("INTROVERT_ACCOUNT_2", "ALICE")

	stdout, _, err := executeCLI(t, home, "plan")
	require.NoError(t, err)
	assert.Contains(t, stdout, "accounts: 3")
	assert.Contains(t, stdout, "Carol (")
}

func TestPlanJSONOutput(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home))
	t.Setenv("INTROVERT_ISLAND", "Bob")
	t.Setenv("INTROVERT_SWARM_JOIN_DELAY", "2s")

	stdout, _, err := executeCLI(t, home, "plan", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"Destination\": \"Bob\"")
	assert.Contains(t, stdout, "\"Target\": \"Bob\"")
	assert.Contains(t, stdout, "\"DestinationKnown\": true")
	assert.Contains(t, stdout, "\"JoinAfter\": 2000000000")
}

func TestPlanWarnsWhenDestinationIsNotAnAccount(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home))
	t.Setenv("INTROVERT_ISLAND", "Dave")

	stdout, _, err := executeCLI(t, home, "plan")
	require.NoError(t, err)
	assert.Contains(t, stdout, "destination Dave is not one of the configured accounts")
}

func TestPlanRequiresDestination(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home))

	_, _, err := executeCLI(t, home, "plan")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingDestination)
}

func TestPlanRequiresAccounts(t *testing.T) {
	t.Setenv("INTROVERT_ISLAND", "Bob")

	_, _, err := executeCLI(t, t.TempDir(), "plan")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoAccounts)
}

func TestRunReplaysScriptsAndPrintsCommands(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home))
	t.Setenv("INTROVERT_ISLAND", "Bob")
	t.Setenv("INTROVERT_SWARM_JOIN_DELAY", "0s")

	scripts := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(scripts, "Alice.jsonl"), []byte(
		`{"type":"init"}`+"\n"+
			`{"type":"spawn"}`+"\n"+
			`{"type":"chat","text":"{\"server\":\"mini1\",\"gametype\":\"BEDWARS\"}"}`+"\n"+
			`{"type":"chat","text":"{\"server\":\"mini2\",\"gametype\":\"SKYBLOCK\"}"}`+"\n"+
			`{"type":"disconnect"}`+"\n",
	), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(scripts, "Bob.jsonl"), []byte(
		`{"type":"spawn"}`+"\n"+
			`{"type":"chat","text":"{\"server\":\"limbo\"}"}`+"\n"+
			`{"type":"chat","text":"You have 20 Mana left"}`+"\n"+
			`{"type":"chat","text":"{\"server\":\"mini3\",\"gametype\":\"SKYBLOCK\"}"}`+"\n",
	), 0o644))

	stdout, _, err := executeCLI(t, home, "run", "--script-dir", scripts)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Alice\tclient-information main_hand=left\n")
	assert.Contains(t, stdout, "Alice\t/skyblock\n")
	assert.Contains(t, stdout, "Alice\t/visit Bob\n")
	assert.Contains(t, stdout, "Bob\t/lobby\n")
	assert.Contains(t, stdout, "Bob\t/warp island\n")
	assert.NotContains(t, stdout, "Bob\t/visit")
}

func TestRunSkipsAccountsWithoutScript(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home))
	t.Setenv("INTROVERT_ISLAND", "Bob")
	t.Setenv("INTROVERT_SWARM_JOIN_DELAY", "0s")

	scripts := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(scripts, "Bob.jsonl"), []byte(
		`{"type":"chat","text":"{\"server\":\"mini3\",\"gametype\":\"SKYBLOCK\"}"}`+"\n",
	), 0o644))

	stdout, stderr, err := executeCLI(t, home, "run", "--script-dir", scripts)
	require.NoError(t, err)
	assert.Equal(t, "Bob\t/warp island\n", stdout)
	assert.Contains(t, stderr, "join failed")
}

func TestRunRequiresScriptDir(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home))
	t.Setenv("INTROVERT_ISLAND", "Bob")

	_, _, err := executeCLI(t, home, "run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--script-dir is required")
}

func TestAccountAddThenList(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "account", "add", "Carol", "--uuid", "2f1c5a2e-7a4b-4d53-9a3e-4a8c8e0c9b11")
	require.NoError(t, err)
	assert.Equal(t, "saved Carol (2f1c5a2e-7a4b-4d53-9a3e-4a8c8e0c9b11)\n", stdout)

	_, _, err = executeCLI(t, home, "account", "add", "Dave")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, home, "account", "list")
	require.NoError(t, err)
	dave := domain.NewAccountIdentity("Dave", uuid.Nil)
	assert.Equal(t,
		"Carol\t2f1c5a2e-7a4b-4d53-9a3e-4a8c8e0c9b11\nDave\t"+dave.ID.String()+"\n",
		stdout,
	)
}

func TestAccountAddRejectsInvalidUUID(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "account", "add", "Carol", "--uuid", "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse --uuid")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeRosterFixture(home string) error {
	configDir := filepath.Join(home, ".config", "introvert")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	roster := `version = 1

[[accounts]]
name = "Alice"

[[accounts]]
name = "Bob"
uuid = "5b0c7f2a-1d3e-4f56-8a9b-0c1d2e3f4a5b"
`

	return os.WriteFile(filepath.Join(configDir, "accounts.toml"), []byte(roster), 0o600)
}
