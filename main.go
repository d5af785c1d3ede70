package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/fang"
	"github.com/lehigh-university-libraries/foldbook/cmd"
)

// version is set at release time with -ldflags "-X main.version=...".
var version string

func main() {
	root := cmd.NewRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(buildVersion(version, debug.ReadBuildInfo)),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}

// buildVersion prefers the linker-provided version, then the module version
// recorded by go install, then "dev".
func buildVersion(linked string, info func() (*debug.BuildInfo, bool)) string {
	if linked != "" {
		return linked
	}
	if bi, ok := info(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return "dev"
}
