package main

import "github.com/user/dappaudit/cmd"

func main() {
	cmd.Execute()
}
