package main

import "firewatch/cmd/firewatch/commands"

func main() {
	commands.Execute()
}
