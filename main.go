package main

import "github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/cli"

func main() {
	cli.Start()
}
