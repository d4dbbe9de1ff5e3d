package main

import (
	"github.com/fluxofest/live-chat/cmd"
)

func main() {
	cmd.Execute()
}
