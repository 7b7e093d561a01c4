package main

import "github.com/nfrund/gallery/cmd/gallery-cli/cmd"

func main() {
	cmd.Execute()
}
