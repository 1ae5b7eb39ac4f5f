package main

import "github.com/sartorproj/godecomp/cmd/godecomp/cmd"

func main() {
	cmd.Execute()
}
