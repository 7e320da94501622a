package main

import "github.com/gridsym/trisym/cmd"

func main() {
	cmd.Execute()
}
