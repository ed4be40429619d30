package cmd

import (
	"fmt"
	"log"

	"github.com/urfave/cli/v2"

	"github.gatech.edu/ECEInnovation/RV32I-Assembler/autograder"
)

var AutograderConfigFlag = &cli.PathFlag{
	Name:  "autograder-config",
	Usage: "Path to the autograder config",
	Value: autograder.DefaultConfigPath,
}

var GradeCommand = &cli.Command{
	Name:        "grade",
	Usage:       "Grades submitted assembly against reference hex listings",
	Description: "Assembles every test case's source and writes Gradescope results",
	Action:      Grade,
	Flags: []cli.Flag{
		AutograderConfigFlag,
		DebugFlag,
		LogEndpointFlag,
	},
}

func Grade(ctx *cli.Context) error {
	enableDebugLogging(ctx)
	conf, err := autograder.LoadConfig(ctx.Path(AutograderConfigFlag.Name))
	if err != nil {
		return err
	}

	results, err := autograder.Grade(conf)
	if err != nil {
		return fmt.Errorf("grading %s failed: %w", conf.AssignmentName, err)
	}
	if err := results.Save(conf.ResultsPath); err != nil {
		return err
	}
	log.Printf("%s: scored %d, results written to %s\n", conf.AssignmentName, results.TotalScore(), conf.ResultsPath)
	return nil
}
