package main

import "wikitree/cmd"

func main() {
	cmd.Execute()
}
