package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/sms-ledger/internal/config"
	"github.com/carson-networks/sms-ledger/internal/ledger"
	"github.com/carson-networks/sms-ledger/internal/logging"
	"github.com/carson-networks/sms-ledger/internal/storage"
)

const backlogFixture = `{"sender":"VM-HDFCBK","body":"Rs 500.00 debited from A/c XX1234","receivedAt":"2024-01-16 10:00:00"}

{"sender":"JIO","body":"Recharge now and get 2GB free","receivedAt":"2024-01-17 09:00:00"}
{"sender":"AD-SBIINB","body":"INR 1,200 credited to your account","receivedAt":"2024-02-01 08:30:00"}
{"sender":"AD-SBIINB","body":"Your statement is ready","receivedAt":"2024-02-02 08:30:00"}
`

func setupScan(t *testing.T, cfg *config.Config) (*cobra.Command, *bytes.Buffer, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "messages.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(backlogFixture), 0o600))

	envConfig = cfg
	logger = logging.SetupLogging("error")

	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetContext(context.Background())
	return cmd, buf, path
}

func baseConfig() *config.Config {
	return &config.Config{
		StorageDriver:     config.StorageDriverSQLite,
		EnrichmentTimeout: time.Second,
		OperatorWorkers:   1,
	}
}

func TestScan_DryRun(t *testing.T) {
	cmd, buf, path := setupScan(t, baseConfig())

	err := runScan(cmd, scanOptions{file: path, dryRun: true})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "messages: 4")
	assert.Contains(t, out, "filtered_out")
	assert.Contains(t, out, "unclassifiable")
	assert.NotContains(t, out, "persisted")
	assert.Contains(t, out, "February 2024")
	assert.Contains(t, out, "1200.00")
	assert.Contains(t, out, "January 2024")
	assert.Contains(t, out, "500.00")
}

func TestScan_Persists(t *testing.T) {
	cfg := baseConfig()
	cfg.SQLitePath = filepath.Join(t.TempDir(), "ledger.db")
	cmd, buf, path := setupScan(t, cfg)

	err := runScan(cmd, scanOptions{file: path, migrate: true})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "persisted")

	s, err := storage.Open(cfg)
	require.NoError(t, err)
	defer s.Close()

	buckets, err := s.Read().Transactions.ListBuckets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []ledger.Bucket{"2024-02", "2024-01"}, buckets)
}

func TestScan_Dump(t *testing.T) {
	cmd, buf, path := setupScan(t, baseConfig())

	err := runScan(cmd, scanOptions{file: path, dryRun: true, dump: true})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "VM-HDFCBK")
	assert.Contains(t, buf.String(), "Kind")
}

func TestScan_MissingFile(t *testing.T) {
	cmd, _, _ := setupScan(t, baseConfig())

	err := runScan(cmd, scanOptions{file: filepath.Join(t.TempDir(), "missing.jsonl"), dryRun: true})
	assert.Error(t, err)
}
