package cmd

import (
	"github.com/urfave/cli/v2"

	"github.gatech.edu/ECEInnovation/RV32I-Assembler/playground"
)

var AddressFlag = &cli.StringFlag{
	Name:  "address",
	Usage: "address the playground listens on",
	Value: playground.DefaultAddress,
}

var PlaygroundCommand = &cli.Command{
	Name:        "playground",
	Usage:       "Serves a browser playground that assembles as you type",
	Description: "Hosts a web page and websocket that assemble submitted source and show the listing and diagnostics",
	Action:      RunPlayground,
	Flags: []cli.Flag{
		ConfigFlag,
		ResolveExpandedFlag,
		AddressFlag,
		DebugFlag,
		LogEndpointFlag,
	},
}

func RunPlayground(ctx *cli.Context) error {
	config, err := loadAssemblerConfig(ctx)
	if err != nil {
		return err
	}
	enableDebugLogging(ctx)
	return playground.NewServer(config).ListenAndServe(ctx.Context, ctx.String(AddressFlag.Name))
}
