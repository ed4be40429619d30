package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.gatech.edu/ECEInnovation/RV32I-Assembler/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := cmd.NewApp(os.Args[0])
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
