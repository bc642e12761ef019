package main

import "github.com/xvierd/startpage/cmd"

func main() {
	cmd.Execute()
}
