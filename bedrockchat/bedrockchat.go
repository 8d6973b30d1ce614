package main

import (
	"os"

	_ "github.com/viant/afsc/aws"
	_ "github.com/viant/afsc/gcp"
	_ "github.com/viant/afsc/gs"
	_ "github.com/viant/afsc/s3"
	cli "github.com/viant/bedrockchat/cmd/bedrockchat"
)

// Version is set via -ldflags "-X main.Version=...".
var Version string

func main() {
	cli.SetVersion(Version)
	cli.RunWithCommands(os.Args[1:])
}
