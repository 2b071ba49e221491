package main

import "race-admin/cmd"

func main() {
	cmd.Execute()
}
