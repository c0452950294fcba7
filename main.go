package main

import "github.com/bloodmagesoftware/sectorgeo/cmd"

func main() {
	cmd.Execute()
}
