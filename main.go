package main

import "github.com/atlaschat/atlaschat/cmd"

func main() {
	cmd.Execute()
}
