package main

import "github.com/ficsit-ops/stationboard/internal/cli"

func main() {
	cli.Execute()
}
