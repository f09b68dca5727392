package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/sharesuki/internal/app/models"
	"github.com/yigit/sharesuki/internal/app/models/dto"
	"github.com/yigit/sharesuki/internal/bootstrap"
	"github.com/yigit/sharesuki/internal/config"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "sharesuki", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"serve", "migrate", "search", "match", "match-all"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)
	assert.Equal(t, bootstrap.DefaultConfigPath, configFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

// writeConfig creates a SQLite config with email in dry-run mode.
func writeConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	dbPath := filepath.Join(dir, "cli.db")
	body := fmt.Sprintf(`
database:
  driver: sqlite
  path: %s
smtp:
  dry_run: true
matching:
  bulk_throttle: 0s
logging:
  level: error
  format: json
`, dbPath)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path, dbPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func seed(t *testing.T, dbPath string, records ...*models.SkillRecord) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Path = dbPath

	store, err := bootstrap.SetupDatabase(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer store.Close()

	for _, r := range records {
		_, err := store.Repos.SkillRepository.Insert(context.Background(), r)
		require.NoError(t, err)
	}
}

func strPtr(s string) *string { return &s }

func TestInvalidFormat(t *testing.T) {
	configPath, _ := writeConfig(t)
	_, err := execute(t, "--config", configPath, "--format", "xml", "search")
	assert.Error(t, err)
}

func TestMigrate(t *testing.T) {
	configPath, _ := writeConfig(t)

	out, err := execute(t, "--config", configPath, "--format", "json", "migrate", "--dry-run")
	require.NoError(t, err)
	var result MigrateResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, []string{"001", "002"}, result.Pending)
	assert.Zero(t, result.Applied)

	out, err = execute(t, "--config", configPath, "--format", "json", "migrate")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 2, result.Applied)

	out, err = execute(t, "--config", configPath, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "up to date")
}

func TestSearchAndMatch(t *testing.T) {
	configPath, dbPath := writeConfig(t)
	seed(t, dbPath,
		&models.SkillRecord{StudentID: 123456, FullName: "Ayşe", Email: strPtr("ayse@example.com"), WantedSkill: strPtr("Go"), OfferedSkill: strPtr("Rust")},
		&models.SkillRecord{StudentID: 654321, FullName: "Mehmet", Email: strPtr("mehmet@example.com"), WantedSkill: strPtr("Rust"), OfferedSkill: strPtr("Go")},
		&models.SkillRecord{StudentID: 111111, FullName: "Zeynep", WantedSkill: strPtr("PHP"), OfferedSkill: strPtr("Java")},
	)

	out, err := execute(t, "--config", configPath, "--format", "json", "search", "Rust")
	require.NoError(t, err)
	var records []*models.SkillRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "Mehmet", records[0].FullName, "newest first")

	out, err = execute(t, "--config", configPath, "search")
	require.NoError(t, err)
	assert.Contains(t, out, "Zeynep")
	assert.Contains(t, out, "3 record(s)")

	out, err = execute(t, "--config", configPath, "--format", "json", "match", "1")
	require.NoError(t, err)
	var result dto.NotifyResultResponse
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, int64(1), result.SubjectID)
	require.Equal(t, 1, result.NotifiedCount)
	assert.Equal(t, "Mehmet", result.Notified[0].FullName)

	out, err = execute(t, "--config", configPath, "match-all")
	require.NoError(t, err)
	assert.Contains(t, out, "notified 2 match(es)")

	_, err = execute(t, "--config", configPath, "match", "abc")
	assert.Error(t, err)
}
