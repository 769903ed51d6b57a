package main

import (
	"github.com/Circuit2TikZ/SymbolConvert/internal/cli"
)

func main() {
	cli.Execute()
}
