package main

import "field-comparator/cmd"

func main() {
	cmd.Execute()
}
