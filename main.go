package main

import "github.com/Ammar880121/facemorph-web/cmd"

func main() {
	cmd.Execute()
}
