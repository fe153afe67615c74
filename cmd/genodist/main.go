package main

import "os"

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		errorf("%v", err)
		os.Exit(1)
	}
}
