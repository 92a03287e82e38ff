package main

import (
	"os"

	"github.com/JulietaG13/tp-agente/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
