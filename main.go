package main

import "github.com/DataBuoy/databuoy-cli/cmd"

func main() {
	cmd.Execute()
}
