package main

import (
	dantracker "github.com/dbrooke/dantracker/src"
)

func main() {
	dantracker.DantrackerMain()
}
