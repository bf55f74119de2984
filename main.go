package main

import "github.com/codevault/lw-compiler/cmd"

func main() {
	cmd.Execute()
}
