package main

import (
	"github.com/kalekundert/sgrna/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
