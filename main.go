package main

import "github.com/open-cli-collective/opencli-mcp/internal/cli"

func main() {
	cli.Execute()
}
