package main

import "github.com/Daskott/agenda/cmd"

func main() {
	cmd.Execute()
}
