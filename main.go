package main

import "github.com/tool-alchemist/alchemist/cmd"

func main() {
	cmd.Execute()
}
