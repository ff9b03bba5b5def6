package main

import "github.com/cmmoran/bridgegen/cmd"

func main() {
	cmd.Execute()
}
