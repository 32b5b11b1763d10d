package main

import "github.com/cornichon-db/cornichon/cmd"

func main() {
	cmd.Execute()
}
