// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// JSON is valid CUE, so the same 3-step flow validates both the project
// configurations JSON and any CUE input:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with schema
//  3. Validate and decode to Go struct
//
// # Usage
//
//	//go:embed configurations_schema.cue
//	var schemaBytes []byte
//
//	result, err := cueutil.ParseAndDecode[buildtool.ConfigurationSet](
//	    schemaBytes,
//	    userFileBytes,
//	    "#Configurations",
//	    cueutil.WithFilename("configurations.json"),
//	)
//	if err != nil {
//	    return nil, err  // Error includes CUE path for debugging
//	}
//	return *result.Value, nil
package cueutil
