package main

import "github.com/probatio/dossier/cmd"

func main() {
	cmd.Execute()
}
