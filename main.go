package main

import "github.com/alexiusacademia/goliq/cmd"

func main() {
	cmd.Execute()
}
