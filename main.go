package main

import "certwatch/cmd"

var execCmd = cmd.Execute

func main() {
	execCmd()
}
