package main

import (
	"github.com/NVIDIA/deviceinfo/pkg/cli"
)

func main() {
	cli.Execute()
}
