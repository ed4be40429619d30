package assembler_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.gatech.edu/ECEInnovation/RV32I-Assembler/assembler"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assembler.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dataBase: 0x10010000\nresolveExpandedAddresses: true\n"), 0o644))

	config, err := assembler.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(assembler.DefaultTextBase), config.TextBase)
	assert.Equal(t, uint32(0x10010000), config.DataBase)
	assert.True(t, config.ResolveExpandedAddresses)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := assembler.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read assembler config")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("textBase: [1, 2"), 0o644))
	_, err = assembler.LoadConfig(path)
	assert.ErrorContains(t, err, "failed to parse assembler config")
}
