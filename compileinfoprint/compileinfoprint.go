// compileinfoprint is blank-imported by commands for the side effect of
// printing the compile info banner to stderr before main runs.
package compileinfoprint

import "github.com/carbocation/quantcomp/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
