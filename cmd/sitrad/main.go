package main

import "github.com/NVIDIA/sitrad-dashboard/pkg/cli"

func main() {
	cli.Execute()
}
