package main

import "github.com/nfrund/askby/cmd/askby/cmd"

func main() {
	cmd.Execute()
}
