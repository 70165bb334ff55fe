package main

import (
	"github.com/c9s/signalcore/pkg/cmd"
)

func main() {
	cmd.Execute()
}
