// Package gridfile loads parameter tables declared in HCL or YAML files
// and normalizes them into param.Seq values, ready to attach to prototype
// cases or to preview from the CLI.
//
// An HCL table is a params block:
//
//	params "delete_limit" {
//	  values = [0, 1, 2]
//	}
//
//	params "auth" {
//	  rows = {
//	    anonymous = [],
//	    admin     = ["root", true],
//	  }
//	}
//
// values is an ordered list of rows; a nested tuple becomes one row with
// several positional values. rows keys rows by explicit label. The YAML
// form mirrors the same shape under a top-level params mapping.
package gridfile
