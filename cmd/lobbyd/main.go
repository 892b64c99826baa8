package main

import "github.com/mememaster/lobby/internal/cli"

func main() {
	cli.Execute()
}
