package main

import "reportanalysis/cmd"

func main() {
	cmd.Execute()
}
