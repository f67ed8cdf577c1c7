package main

import "github.com/nfrund/atelier/cmd/atelier-cli/cmd"

func main() {
	cmd.Execute()
}
