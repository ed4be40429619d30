package autograder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type GradescopeTest struct {
	Name       string `json:"name"`
	Number     string `json:"number,omitempty"`
	MaxScore   int    `json:"max_score"`
	Score      int    `json:"score"`
	Output     string `json:"output"`
	Visibility string `json:"visibility"`
	Status     string `json:"status,omitempty"`
}

type GradescopeOutput struct {
	Score *int             `json:"score,omitempty"`
	Tests []GradescopeTest `json:"tests"`
}

func CreateGradescopeOutput() *GradescopeOutput {
	return &GradescopeOutput{
		Tests: []GradescopeTest{},
	}
}

func (gso *GradescopeOutput) AddTest(test GradescopeTest, score int) {
	test.Score = score
	gso.Tests = append(gso.Tests, test)
}

// TotalScore sums the scores of every test.
func (gso *GradescopeOutput) TotalScore() int {
	total := 0
	for _, test := range gso.Tests {
		total += test.Score
	}
	return total
}

// Save writes the results where Gradescope picks them up.
func (gso *GradescopeOutput) Save(path string) error {
	b, err := json.MarshalIndent(gso, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode gradescope results: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create results directory: %w", err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("failed to write gradescope results: %w", err)
	}
	return nil
}

func CreateTestCase(name string, maxScore int, visibility string) GradescopeTest {
	return GradescopeTest{
		Name:       name,
		MaxScore:   maxScore,
		Visibility: visibility,
	}
}

func (gt *GradescopeTest) SetStatus(success bool) {
	if success {
		gt.Status = "passed"
	} else {
		gt.Status = "failed"
	}
}

func (gt *GradescopeTest) OutputPrintLn(str string) {
	gt.Output += str + "\n"
}
