package main

import "hvacguide/cmd/hvacguide/cmd"

func main() {
	cmd.Execute()
}
