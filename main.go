package main

import "github.com/aschey/livetimer/cmd"

func main() {
	cmd.Execute()
}
