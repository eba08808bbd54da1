package main

import (
	"fanpulse/internal/cmd"
)

func main() {
	cmd.Run()
}
