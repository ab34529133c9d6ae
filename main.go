package main

import "github.com/David-Botos/data-triage/cmd"

func main() {
	cmd.Execute()
}
