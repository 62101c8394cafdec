package main

import "github.com/pfrederiksen/cube-sniper/internal/cli"

func main() {
	cli.Execute()
}
