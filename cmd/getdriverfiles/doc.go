// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the getdriverfiles command line.
//
// The root command reads one INF file and prints the catalog files it names,
// then the source paths of every file listed in its SourceDisksFiles sections.
// The config subcommands inspect and initialize the CUE configuration file.
package cmd
