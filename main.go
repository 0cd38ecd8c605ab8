package main

import "github.com/sahayuk/sahayuk/cmd"

func main() {
	cmd.Execute()
}
