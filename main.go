package main

import "github.com/gopherdev/chip8vm/cmd"

func main() {
	cmd.Execute()
}
