// Package main hosts the autoreel CLI.
//
// The Cobra command tree loads configuration, builds the assembly pipeline,
// and renders results for the terminal or as JSON. Pipeline behaviour lives in
// the internal packages; commands here only translate flags into requests.
package main
