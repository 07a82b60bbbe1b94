package main

import "github.com/Zayedtasnim7/se333-mcp-agent/internal/cli"

func main() {
	cli.Execute()
}
