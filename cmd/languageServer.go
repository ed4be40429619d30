package cmd

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.gatech.edu/ECEInnovation/RV32I-Assembler/languageServer"
	"github.gatech.edu/ECEInnovation/RV32I-Assembler/util"
)

var (
	DebugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "enable debug logging on stderr",
	}
	LogEndpointFlag = &cli.StringFlag{
		Name:  "log-endpoint",
		Usage: "also POST every debug message to this URL",
	}
	TCPFlag = &cli.StringFlag{
		Name:        "tcp",
		Usage:       "listen for clients on this TCP address instead of stdio, for remote debugging",
		DefaultText: "stdio",
	}
)

var LanguageServerCommand = &cli.Command{
	Name:        "languageServer",
	Usage:       "Runs the RV32I language server",
	Description: "Serves diagnostics, hover and formatting for RV32I assembly over the Language Server Protocol",
	Action:      RunLanguageServer,
	Flags: []cli.Flag{
		ConfigFlag,
		ResolveExpandedFlag,
		DebugFlag,
		LogEndpointFlag,
		TCPFlag,
	},
}

func enableDebugLogging(ctx *cli.Context) {
	if ctx.Bool(DebugFlag.Name) {
		util.LoggingEnabled = true
		util.LogEndpoint = ctx.String(LogEndpointFlag.Name)
	}
}

func RunLanguageServer(ctx *cli.Context) error {
	config, err := loadAssemblerConfig(ctx)
	if err != nil {
		return err
	}
	enableDebugLogging(ctx)

	if addr := ctx.String(TCPFlag.Name); addr != "" {
		return languageServer.ListenAndServeTCP(ctx.Context, addr, config)
	}

	// stdout carries the protocol
	log.SetOutput(os.Stderr)
	languageServer.ListenAndServe(ctx.Context, config)
	return nil
}
