package main

import "github.com/stevehiehn/multitest/cmd"

func main() {
	cmd.Execute()
}
