package main

import (
	"os"

	"github.com/carson-networks/sms-ledger/cmd/backlog/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
