package main

import "github.com/saidtaznakhte/Vitatrak/cmd/vita"

func main() {
	vita.Execute()
}
