package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stderr bytes.Buffer
	app := NewApp("rv32i")
	app.ErrWriter = &stderr
	app.Writer = &bytes.Buffer{}
	// keep cli.Exit from ending the test binary
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"rv32i"}, args...))
	return stderr.String(), err
}

func writeSource(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "prog.s")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestAssembleWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, ".data\nv: .word 42\n.text\nmain: addi x1, x0, 1\n")
	out := filepath.Join(dir, "out")

	stderr, err := runApp(t, "assemble", "--output-dir", out, source)
	require.NoError(t, err)
	assert.Empty(t, stderr)

	bin, err := os.ReadFile(filepath.Join(out, "prog.bin.txt"))
	require.NoError(t, err)
	assert.Equal(t, "DATA @0x10000000: 42\nPC=0x0000 | addi x1, x0, 1 → 00000000000100000000000010010011\n", string(bin))

	hex, err := os.ReadFile(filepath.Join(out, "prog.hex.txt"))
	require.NoError(t, err)
	assert.Equal(t, "DATA @0x10000000: 0000002a\nPC=0x0000 | addi x1, x0, 1 → 00100093\n", string(hex))

	data, err := os.ReadFile(filepath.Join(out, "prog.data.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"268435456\": 42\n}\n", string(data))

	_, err = os.Stat(filepath.Join(out, "prog.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestAssembleReportsFailures(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, ".text\nfoo x1\nnop\n")

	stderr, err := runApp(t, "assemble", "-o", dir, "--prefix", "broken", "-f", "hex", "-f", "report", source)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prog.s: assembly finished with errors")
	assert.Equal(t, "error at PC=0x0: unsupported instruction: foo\n", stderr)

	hex, err := os.ReadFile(filepath.Join(dir, "broken.hex.txt"))
	require.NoError(t, err)
	assert.Equal(t, "PC=0x0004 | nop → 00000013\n", string(hex))

	report, err := os.ReadFile(filepath.Join(dir, "broken.report.txt"))
	require.NoError(t, err)
	assert.Equal(t, stderr, string(report))
}

func TestAssembleWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, ".text\nla x1, target\ntarget: nop\n")
	config := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(config, []byte("textBase: 0x400000\nresolveExpandedAddresses: true\n"), 0644))

	_, err := runApp(t, "assemble", "-c", config, "-o", dir, "-f", "hex", source)
	require.NoError(t, err)

	hex, err := os.ReadFile(filepath.Join(dir, "prog.hex.txt"))
	require.NoError(t, err)
	assert.Equal(t, "PC=0x400000 | la x1, target → 004000b7\n"+
		"PC=0x400004 | la x1, target → 00808093\n"+
		"PC=0x400008 | nop → 00000013\n", string(hex))
}

func TestAssembleArgumentErrors(t *testing.T) {
	_, err := runApp(t, "assemble")
	assert.EqualError(t, err, "no source file given")

	_, err = runApp(t, "assemble", filepath.Join(t.TempDir(), "missing.s"))
	assert.ErrorContains(t, err, "could not read source file")

	dir := t.TempDir()
	_, err = runApp(t, "assemble", "-o", dir, "-f", "elf", writeSource(t, dir, "nop"))
	assert.EqualError(t, err, `unknown output format "elf"`)
}
