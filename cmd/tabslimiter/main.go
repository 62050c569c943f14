package main

import "github.com/kcaldas/tabslimiter/cmd/cli"

func main() {
	cli.Execute()
}
