// main is the entry point for the impact CLI.
package main

import (
	"github.com/myimpact/impact/cmd"
	"github.com/myimpact/impact/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
