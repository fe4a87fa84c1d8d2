package main

import (
	"github.com/jjtimmons/olap/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
