package main

import "github.com/mpapenbr/pitwall-go/cmd"

func main() {
	cmd.Execute()
}
