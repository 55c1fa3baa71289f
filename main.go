package main

import "termkit/internal/cli"

func main() {
	cli.Execute()
}
