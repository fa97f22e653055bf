// README: CLI entry point; generate, preview prompts and check model replies.
package main

func main() {
	Execute()
}
