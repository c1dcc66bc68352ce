package main

import "github.com/geange/fst/internal/cli"

func main() {
	cli.Execute()
}
