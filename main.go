package main

import "github.com/mj1618/sapgui-cli/cmd"

func main() {
	cmd.Execute()
}
