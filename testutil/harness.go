// Test only package for harness to set up logging and run comparison specs
package testutil

import (
	"flag"
	"log"
	"os"
	"sync"

	u "github.com/araddon/gou"
)

var (
	verbose   *bool
	setupOnce = sync.Once{}
)

// Setup enables -vv verbose logging or sends logs to /dev/null
// env var VERBOSELOGS=true was added to support verbose logging with alltests
//
// Call it from TestMain, not init(), the testing flags are only
// registered once the test binary's main is running.
func Setup() {
	setupOnce.Do(func() {

		if flag.CommandLine.Lookup("vv") == nil {
			verbose = flag.Bool("vv", false, "Verbose Logging?")
		}

		if !flag.Parsed() {
			flag.Parse()
		}
		logger := u.GetLogger()
		if logger != nil {
			// don't re-setup
		} else {
			if (verbose != nil && *verbose == true) || os.Getenv("VERBOSELOGS") != "" {
				u.SetupLogging("debug")
				u.SetColorOutput()
			} else {
				// make sure logging is always non-nil
				dn, _ := os.Open(os.DevNull)
				u.SetLogger(log.New(dn, "", 0), "error")
			}
		}
	})
}
