package main

import "github.com/stonklab/stonk/internal/cli"

func main() {
	cli.Run()
}
