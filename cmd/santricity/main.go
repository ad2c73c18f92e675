package main

import (
	"os"

	"github.com/eseries-community/go-santricity/cmd/santricity/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
