package main

import (
	"os"

	"github.com/ctdp-app/ctdp/app"
	"github.com/ctdp-app/ctdp/internal/osutil"
	"github.com/ctdp-app/ctdp/report"
)

func run(args []string) error {
	return app.Get().Run(args)
}

func main() {
	if err := run(os.Args); err != nil {
		report.Error(err)
		os.Exit(int(osutil.ExitError))
	}
}
