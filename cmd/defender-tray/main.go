package main

import "github.com/oshokin/defender-tray/cmd/defender-tray/cmd"

func main() {
	cmd.Execute()
}
