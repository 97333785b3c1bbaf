package main

import "github.com/aniquiz/titlesearch/cmd"

func main() {
	cmd.Execute()
}
