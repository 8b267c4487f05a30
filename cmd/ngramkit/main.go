package main

import "ngramkit/internal/cli"

func main() {
	cli.Execute()
}
