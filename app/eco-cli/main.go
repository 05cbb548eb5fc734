package main

import "ecoRecommend/app/eco-cli/cmd"

func main() {
	cmd.Execute()
}
