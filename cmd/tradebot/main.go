package main

import (
	"os"

	"github.com/1cbyc/1cbyc-trading-bot/cmd/tradebot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
