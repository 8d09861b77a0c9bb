// Command itcctl is the offline companion of the API: it normalizes saved
// model output, scans invoices, prints ITC buckets and renders GSTR-3B.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "itcctl: %v\n", err)
		os.Exit(1)
	}
}
