// Command uidctl is the operator tool of go-uid-panel. It applies schema
// migrations, bootstraps the owner account and purges old activity without
// going through the HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/go-uid-panel/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	op := newOperator(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
	if err := newRootCmd(op).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
