// SPDX-License-Identifier: MPL-2.0

// Package output writes resolved driver package manifests.
//
// The text format streams one path per line as entries arrive. The json,
// toml and yaml formats buffer the manifest and encode it on Close.
package output
