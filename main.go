package main

import "github.com/agentware/appforge/internal/cli"

func main() {
	cli.Execute()
}
