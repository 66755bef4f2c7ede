package main

import (
	"github.com/onflow/dao-dashboard/cmd/dao/cmd"
)

func main() {
	cmd.Execute()
}
