package main

import "parquet-compactor/cmd"

func main() {
	cmd.Execute()
}
