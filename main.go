package main

import "icon-builder/cmd"

func main() {
	cmd.Execute()
}
