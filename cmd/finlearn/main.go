package main

import "finlearn/internal/cli"

func main() {
	cli.Execute()
}
