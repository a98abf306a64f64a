package main

import "hostdeps/internal/cli"

func main() {
	cli.Execute()
}
