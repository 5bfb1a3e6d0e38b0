package main

import "github.com/alexajuno/pokerithm/cmd"

func main() {
	cmd.Execute()
}
