package main

import (
	"github.com/NVIDIA/sparrow-recipe/pkg/cli"
)

func main() {
	cli.Execute()
}
