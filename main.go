package main

import "github.com/alexiusacademia/gospectra/cmd"

func main() {
	cmd.Execute()
}
