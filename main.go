package main

import "github.com/notargets/tensorbasis/cmd"

func main() {
	cmd.Execute()
}
