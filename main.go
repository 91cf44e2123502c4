package main

import "github.com/rpgo/retirement-projector/cmd"

func main() {
	cmd.Execute()
}
