package main

import "github.com/albert-jeong/auto-class/internal/cli"

func main() {
	cli.Execute()
}
