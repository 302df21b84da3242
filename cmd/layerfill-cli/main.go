package main

import "layerfill/cmd/layerfill-cli/cmd"

func main() {
	cmd.Execute()
}
