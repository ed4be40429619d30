package autograder

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const referenceListing = `DATA @0x10000000: 0000002a
PC=0x0000 | addi x1, x0, 1 → 00100093
PC=0x0004 | addi x2, x0, 2 → 00200113
`

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
}

// setupAssignment lays out a config, an expected listing and a submission
// directory, returning the config path.
func setupAssignment(t *testing.T, submission string) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "source", "expected", "part1.hex"), referenceListing)
	writeFile(t, filepath.Join(dir, "submission", "part1.s"), submission)

	config := `assignmentName: Lab 1
studentCodePath: ` + filepath.Join(dir, "submission") + `
resultsPath: ` + filepath.Join(dir, "results", "results.json") + `
assemblyPoints: 2
testCases:
  - number: 1
    name: Part 1
    points: 8
    source: part1.s
    expected: expected/part1.hex
`
	configPath := filepath.Join(dir, "source", "autograderConfig.yaml")
	writeFile(t, configPath, config)
	return configPath
}

func TestParseHexListing(t *testing.T) {
	words, err := ParseHexListing(strings.NewReader(referenceListing + "\n"))
	require.NoError(t, err)
	assert.Equal(t, []ListingWord{
		{Data: true, Address: 0x10000000, Word: 42},
		{Address: 0, Word: 0x00100093},
		{Address: 4, Word: 0x00200113},
	}, words)

	_, err = ParseHexListing(strings.NewReader("hello\n"))
	assert.EqualError(t, err, `line 1: unrecognized listing line "hello"`)

	_, err = ParseHexListing(strings.NewReader("PC=0x0000 | nop → zzzz\n"))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	configPath := setupAssignment(t, "")
	conf, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "Lab 1", conf.AssignmentName)
	assert.Equal(t, 2, conf.AssemblyPoints)
	require.Len(t, conf.TestCases, 1)
	assert.Equal(t, "visible", conf.TestCases[0].Visibility)
	assert.Equal(t, uint32(0x10000000), conf.Assembler.DataBase)
	assert.Equal(t, filepath.Join(filepath.Dir(configPath), "expected", "part1.hex"), conf.expectedPath(conf.TestCases[0]))
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	writeFile(t, empty, "assignmentName: nothing\n")
	_, err = LoadConfig(empty)
	assert.ErrorContains(t, err, "has no test cases")

	incomplete := filepath.Join(dir, "incomplete.json")
	writeFile(t, incomplete, `{"testCases": [{"name": "a", "source": "a.s"}]}`)
	_, err = LoadConfig(incomplete)
	assert.ErrorContains(t, err, "needs both a source and an expected listing")
}

func TestGradePassing(t *testing.T) {
	submission := ".data\nanswer: .word 42\n.text\naddi x1, x0, 1\naddi x2, x0, 2\n"
	conf, err := LoadConfig(setupAssignment(t, submission))
	require.NoError(t, err)

	gso, err := Grade(conf)
	require.NoError(t, err)
	require.Len(t, gso.Tests, 2)

	assert.Equal(t, "passed", gso.Tests[0].Status)
	assert.Equal(t, 8, gso.Tests[0].Score)
	assert.Equal(t, "1", gso.Tests[0].Number)
	assert.Equal(t, "All 3 words match.\n", gso.Tests[0].Output)
	assert.Equal(t, "passed", gso.Tests[1].Status)
	require.NotNil(t, gso.Score)
	assert.Equal(t, 10, *gso.Score)
}

func TestGradeMismatch(t *testing.T) {
	submission := ".data\nanswer: .word 41\n.text\naddi x1, x0, 1\nfoo x2\n"
	conf, err := LoadConfig(setupAssignment(t, submission))
	require.NoError(t, err)

	gso, err := Grade(conf)
	require.NoError(t, err)

	test := gso.Tests[0]
	assert.Equal(t, "failed", test.Status)
	assert.Equal(t, 0, test.Score)
	assert.Contains(t, test.Output, "error at PC=0x4: unsupported instruction: foo")
	assert.Contains(t, test.Output, "DATA @0x10000000: expected 0000002a, got 00000029")
	assert.Contains(t, test.Output, "missing 1 words starting at PC=0x0004")

	assert.Equal(t, "failed", gso.Tests[1].Status)
	assert.Equal(t, 0, *gso.Score)
}

func TestGradeMissingSubmission(t *testing.T) {
	configPath := setupAssignment(t, "")
	conf, err := LoadConfig(configPath)
	require.NoError(t, err)
	conf.TestCases[0].Source = "part2.s"

	gso, err := Grade(conf)
	require.NoError(t, err)
	assert.Equal(t, "Could not read submission part2.s.\n", gso.Tests[0].Output)
}

func TestGradeMissingExpected(t *testing.T) {
	conf, err := LoadConfig(setupAssignment(t, "nop"))
	require.NoError(t, err)
	conf.TestCases[0].Expected = "expected/none.hex"

	_, err = Grade(conf)
	assert.ErrorContains(t, err, `test case "Part 1"`)
}

func TestSaveResults(t *testing.T) {
	gso := CreateGradescopeOutput()
	test := CreateTestCase("one", 5, "visible")
	test.SetStatus(true)
	test.OutputPrintLn("ok")
	gso.AddTest(test, 5)

	path := filepath.Join(t.TempDir(), "results", "results.json")
	require.NoError(t, gso.Save(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	decoded := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	tests := decoded["tests"].([]interface{})
	require.Len(t, tests, 1)
	assert.Equal(t, "one", tests[0].(map[string]interface{})["name"])
	assert.Equal(t, float64(5), tests[0].(map[string]interface{})["score"])
	assert.Equal(t, 5, gso.TotalScore())
}
