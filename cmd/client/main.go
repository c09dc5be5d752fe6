package main

import "pressroom/cmd/client/cmd"

func main() {
	cmd.Execute()
}
