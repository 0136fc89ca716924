package main

import "github.com/foomo/editor-prevnext/cmd"

func main() {
	cmd.Execute()
}
