package main

import "foundation/internal/cli"

func main() {
	cli.Execute()
}
