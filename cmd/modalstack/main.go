// Package main provides the CLI entrypoint for modalstack.
package main

func main() {
	Execute()
}
