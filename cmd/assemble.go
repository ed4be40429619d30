package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.gatech.edu/ECEInnovation/RV32I-Assembler/assembler"
	"github.gatech.edu/ECEInnovation/RV32I-Assembler/renderer"
)

var (
	ConfigFlag = &cli.PathFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to a YAML assembler config (textBase, dataBase, resolveExpandedAddresses)",
	}
	OutputDirFlag = &cli.PathFlag{
		Name:    "output-dir",
		Aliases: []string{"o"},
		Usage:   "Directory the output artifacts are written to",
		Value:   ".",
	}
	PrefixFlag = &cli.StringFlag{
		Name:        "prefix",
		Usage:       "File name prefix of the output artifacts",
		DefaultText: "source file name without extension",
	}
	FormatFlag = &cli.StringSliceFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Artifacts to write. Options: bin, hex, data, json, report",
		Value:   cli.NewStringSlice("bin", "hex", "data"),
	}
	ResolveExpandedFlag = &cli.BoolFlag{
		Name:  "resolve-expanded-addresses",
		Usage: "Give labels the addresses they have after pseudo-instruction expansion",
	}
)

var AssembleCommand = &cli.Command{
	Name:        "assemble",
	Usage:       "Assembles an RV32I source file",
	ArgsUsage:   "<source.s>",
	Description: "Assembles an RV32I source file into binary and hex listings and a data segment dump",
	Action:      AssembleFile,
	Flags: []cli.Flag{
		ConfigFlag,
		OutputDirFlag,
		PrefixFlag,
		FormatFlag,
		ResolveExpandedFlag,
	},
}

// artifactExtensions names the file each format is written to.
var artifactExtensions = map[string]string{
	"bin":    ".bin.txt",
	"hex":    ".hex.txt",
	"data":   ".data.json",
	"json":   ".json",
	"report": ".report.txt",
}

func loadAssemblerConfig(ctx *cli.Context) (assembler.AssemblerConfig, error) {
	config := assembler.DefaultConfig()
	if path := ctx.Path(ConfigFlag.Name); path != "" {
		var err error
		if config, err = assembler.LoadConfig(path); err != nil {
			return config, err
		}
	}
	if ctx.Bool(ResolveExpandedFlag.Name) {
		config.ResolveExpandedAddresses = true
	}
	return config, nil
}

func AssembleFile(ctx *cli.Context) error {
	source := ctx.Args().First()
	if source == "" {
		return fmt.Errorf("no source file given")
	}

	config, err := loadAssemblerConfig(ctx)
	if err != nil {
		return err
	}
	assembler.SetConfig(config)

	b, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("could not read source file: %w", err)
	}

	res := assembler.Assemble(string(b))
	res.FileName = filepath.Base(source)

	prefix := ctx.String(PrefixFlag.Name)
	if prefix == "" {
		prefix = strings.TrimSuffix(res.FileName, filepath.Ext(res.FileName))
	}
	outputDir := ctx.Path(OutputDirFlag.Name)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("could not create output directory: %w", err)
	}

	for _, format := range ctx.StringSlice(FormatFlag.Name) {
		r, err := renderer.ByFormat(format)
		if err != nil {
			return err
		}
		path := filepath.Join(outputDir, prefix+artifactExtensions[r.Format()])
		if err := writeArtifact(path, r, res); err != nil {
			return err
		}
	}

	// errors and warnings always go to the console too
	stderr := ctx.App.ErrWriter
	if stderr == nil {
		stderr = os.Stderr
	}
	if err := renderer.NewReportRenderer(renderer.IsTerminal(stderr)).Render(res, stderr); err != nil {
		return err
	}

	if !res.Succeeded() {
		return cli.Exit(fmt.Sprintf("%s: assembly finished with errors", res.FileName), 1)
	}
	return nil
}

func writeArtifact(path string, r renderer.Renderer, res *assembler.AssembledResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s output: %w", r.Format(), err)
	}
	if err := r.Render(res, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("could not write %s output: %w", r.Format(), err)
	}
	return nil
}
