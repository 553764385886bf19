package main

import "github.com/Sixteen1-6/Pong/internal/cli"

func main() {
	cli.Execute()
}
