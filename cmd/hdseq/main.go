// Command hdseq encodes integer sequences as hypervectors and classifies
// them by nearest neighbors.
//
// Usage:
//
//	hdseq demo                                   Classify the built-in dataset against itself
//	hdseq classify --train train.yaml --test t.yaml
//	hdseq info                                   Print version, CPU and configuration
package main

import "github.com/Amansingh-afk/hdseq/cmd/hdseq/commands"

func main() {
	commands.Execute()
}
