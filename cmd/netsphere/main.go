package main

import (
	"runtime"

	"github.com/ThatOtherAndrew/netsphere/cmd"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	cmd.Execute()
}
