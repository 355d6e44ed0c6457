package main

import "github.com/aristide1997/version-vault/cmd"

func main() {
	cmd.Execute()
}
