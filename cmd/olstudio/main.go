package main

import "github.com/olstudio/olstudio/internal/cli"

func main() {
	cli.Execute()
}
