package autograder

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.gatech.edu/ECEInnovation/RV32I-Assembler/assembler"
	"github.gatech.edu/ECEInnovation/RV32I-Assembler/renderer"
	"github.gatech.edu/ECEInnovation/RV32I-Assembler/util"
)

// how many differing words are listed before the output is cut short
const maxReportedMismatches = 10

// ListingWord is one line of a hex listing.
type ListingWord struct {
	Data    bool
	Address uint32
	Word    uint32
}

// ParseHexListing reads back a listing written by the hex renderer. Blank
// lines are skipped.
func ParseHexListing(r io.Reader) ([]ListingWord, error) {
	var words []ListingWord
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		word, err := parseListingLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read listing: %w", err)
	}
	return words, nil
}

func parseListingLine(line string) (ListingWord, error) {
	var address, value string
	word := ListingWord{}
	switch {
	case strings.HasPrefix(line, "DATA @"):
		rest := strings.TrimPrefix(line, "DATA @")
		colon := strings.Index(rest, ":")
		if colon < 0 {
			return word, fmt.Errorf("malformed data line %q", line)
		}
		word.Data = true
		address, value = rest[:colon], rest[colon+1:]
	case strings.HasPrefix(line, "PC="):
		bar := strings.Index(line, "|")
		arrow := strings.LastIndex(line, "→")
		if bar < 0 || arrow < bar {
			return word, fmt.Errorf("malformed instruction line %q", line)
		}
		address, value = line[len("PC="):bar], line[arrow+len("→"):]
	default:
		return word, fmt.Errorf("unrecognized listing line %q", line)
	}

	a, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(address), "0x"), 16, 32)
	if err != nil {
		return word, fmt.Errorf("bad address in %q: %w", line, err)
	}
	v, err := strconv.ParseUint(strings.TrimSpace(value), 16, 32)
	if err != nil {
		return word, fmt.Errorf("bad word in %q: %w", line, err)
	}
	word.Address = uint32(a)
	word.Word = uint32(v)
	return word, nil
}

// Grade runs every test case of conf. An error means the assignment itself
// is broken (an expected listing is missing or unreadable), not the
// submission.
func Grade(conf *Config) (*GradescopeOutput, error) {
	gso := CreateGradescopeOutput()
	allAssembled := true

	for _, tc := range conf.TestCases {
		expected, err := readExpected(conf.expectedPath(tc))
		if err != nil {
			return nil, fmt.Errorf("test case %q: %w", tc.Name, err)
		}

		test := CreateTestCase(tc.Name, tc.Points, tc.Visibility)
		if tc.Number != 0 {
			test.Number = strconv.Itoa(tc.Number)
		}
		passed, assembled := runTestCase(conf, tc, expected, &test)
		allAssembled = allAssembled && assembled
		test.SetStatus(passed)
		score := 0
		if passed {
			score = tc.Points
		}
		util.LogF("autograder: %s scored %d/%d", tc.Name, score, tc.Points)
		gso.AddTest(test, score)
	}

	if conf.AssemblyPoints > 0 {
		test := CreateTestCase("Assembles without errors", conf.AssemblyPoints, "visible")
		test.SetStatus(allAssembled)
		score := 0
		if allAssembled {
			score = conf.AssemblyPoints
		} else {
			test.OutputPrintLn("At least one source file has assembler errors, see the test cases above.")
		}
		gso.AddTest(test, score)
	}

	total := gso.TotalScore()
	gso.Score = &total
	return gso, nil
}

func readExpected(path string) ([]ListingWord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open expected listing: %w", err)
	}
	defer f.Close()
	return ParseHexListing(f)
}

// runTestCase fills in test's output and reports whether the submission
// matched and whether it assembled without errors.
func runTestCase(conf *Config, tc TestCase, expected []ListingWord, test *GradescopeTest) (bool, bool) {
	path := conf.sourcePath(tc)
	b, err := os.ReadFile(path)
	if err != nil {
		test.OutputPrintLn(fmt.Sprintf("Could not read submission %s.", filepath.Base(path)))
		return false, false
	}

	res := assembler.AssembleWithConfig(string(b), conf.Assembler)
	res.FileName = filepath.Base(path)

	if len(res.Diagnostics) > 0 || len(res.LineErrors) > 0 {
		var report bytes.Buffer
		if err := renderer.NewReportRenderer(false).Render(res, &report); err == nil {
			test.OutputPrintLn(strings.TrimRight(report.String(), "\n"))
		}
	}

	var listing bytes.Buffer
	if err := renderer.NewHexRenderer().Render(res, &listing); err != nil {
		test.OutputPrintLn("Could not render the assembled program: " + err.Error())
		return false, false
	}
	actual, err := ParseHexListing(&listing)
	if err != nil {
		test.OutputPrintLn("Could not read back the assembled program: " + err.Error())
		return false, false
	}

	mismatches := compareListings(expected, actual)
	for i, mismatch := range mismatches {
		if i == maxReportedMismatches {
			test.OutputPrintLn(fmt.Sprintf("... and %d more differences", len(mismatches)-i))
			break
		}
		test.OutputPrintLn(mismatch)
	}
	if len(mismatches) == 0 {
		test.OutputPrintLn(fmt.Sprintf("All %d words match.", len(expected)))
	}
	return len(mismatches) == 0, res.Succeeded()
}

func compareListings(expected, actual []ListingWord) []string {
	var mismatches []string
	n := len(expected)
	if len(actual) < n {
		n = len(actual)
	}
	for i := 0; i < n; i++ {
		e, a := expected[i], actual[i]
		if e == a {
			continue
		}
		if e.Data != a.Data || e.Address != a.Address {
			mismatches = append(mismatches, fmt.Sprintf("%s: expected %s, got %s at %s", describe(e), assembler.FormatHex(e.Word), assembler.FormatHex(a.Word), describe(a)))
		} else {
			mismatches = append(mismatches, fmt.Sprintf("%s: expected %s, got %s", describe(e), assembler.FormatHex(e.Word), assembler.FormatHex(a.Word)))
		}
	}
	if len(actual) < len(expected) {
		mismatches = append(mismatches, fmt.Sprintf("missing %d words starting at %s", len(expected)-len(actual), describe(expected[len(actual)])))
	} else if len(actual) > len(expected) {
		mismatches = append(mismatches, fmt.Sprintf("%d unexpected words starting at %s", len(actual)-len(expected), describe(actual[len(expected)])))
	}
	return mismatches
}

func describe(w ListingWord) string {
	if w.Data {
		return fmt.Sprintf("DATA @0x%08x", w.Address)
	}
	return fmt.Sprintf("PC=0x%04x", w.Address)
}

