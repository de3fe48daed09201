package main

import "github.com/andrewpaige1/kioku-api/cmd"

func main() {
	cmd.Execute()
}
