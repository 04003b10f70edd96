package main

import "github.com/naka-gawa/github-harvest/cmd"

func main() {
	cmd.Execute()
}
