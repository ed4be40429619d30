// Package cmd holds the command line interface of the assembler.
package cmd

import (
	"github.com/urfave/cli/v2"
)

// NewApp builds the command line application with every command registered.
func NewApp(name string) *cli.App {
	app := cli.NewApp()
	app.Name = name
	app.Usage = "RV32I Assembler"
	app.Description = "Two-pass RV32I assembler with a language server, a browser playground and an autograder"
	app.Commands = []*cli.Command{
		AssembleCommand,
		LanguageServerCommand,
		PlaygroundCommand,
		GradeCommand,
	}
	return app
}
