package main

import "ufops/cmd"

func main() {
	cmd.Execute()
}
