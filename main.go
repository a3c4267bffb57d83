package main

import "github.com/deckforge/deckforge/cmd"

func main() {
	cmd.Execute()
}
