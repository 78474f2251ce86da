package main

import "github.com/shadighanaat/DRF-store/commands"

func main() {
	commands.Execute()
}
