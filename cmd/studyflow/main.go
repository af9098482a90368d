package main

import "github.com/sandeepkv93/studyflow/cmd/studyflow/root"

func main() {
	root.Execute()
}
