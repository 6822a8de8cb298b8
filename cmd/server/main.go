package main

import "github.com/wanderhub/marketplace-chat/cmd"

func main() {
	cmd.Execute()
}
