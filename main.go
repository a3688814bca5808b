package main

import caloriescan "caloriescan/cmd/caloriescan"

func main() {
	caloriescan.Execute()
}
