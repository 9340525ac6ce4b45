package main

import "github.com/bmatsuo/mclisp/cmd"

func main() {
	cmd.Execute()
}
