// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	InfFileNotFoundId Id = iota + 1
	MissingInfArgumentId
	InfParseErrorId
	PermissionDeniedId
	ConfigLoadFailedId
	InvalidOptionId
	OutputWriteFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue as terminal markdown using the glamour style at stylePath
// ("dark", "light", "notty", "auto" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if links := append(i.DocLinks(), i.ExtLinks()...); len(links) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range links {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	infFileNotFoundIssue = &Issue{
		id: InfFileNotFoundId,
		mdMsg: `
# INF file could not be opened!

The path given on the command line does not point to a readable INF file.

## Things you can try:
- Check the path for typos; quote it if it contains spaces
- List the driver package directory to confirm the file name:
~~~
$ ls path/to/driver/*.inf
~~~
- Pass the INF file itself, not the directory that contains it`,
		extLinks: []HttpLink{
			"https://learn.microsoft.com/windows-hardware/drivers/install/overview-of-inf-files",
		},
	}

	missingInfArgumentIssue = &Issue{
		id: MissingInfArgumentId,
		mdMsg: `
# No INF file specified!

getdriverfiles needs the path of a driver INF file to inspect.

## Usage:
~~~
$ getdriverfiles path/to/driver.inf
~~~

## Useful flags:
- ` + "`--arch amd64`" + ` limits decorated sections to one architecture (repeatable)
- ` + "`--format json`" + ` writes a structured listing
- ` + "`--absolute`" + ` prefixes every entry with the INF file's directory`,
	}

	infParseErrorIssue = &Issue{
		id: InfParseErrorId,
		mdMsg: `
# Failed to parse the INF file!

The file could be read but its structure is not valid INF syntax.

## Common issues:
- A section header is missing its closing bracket
- Entries appear before the first section header
- The file is not an INF file at all (for example a .cat or .sys file)

## Things you can try:
- Check the error message above for the offending line
- Run with verbose mode for more details:
~~~
$ getdriverfiles --verbose path/to/driver.inf
~~~`,
		extLinks: []HttpLink{
			"https://learn.microsoft.com/windows-hardware/drivers/install/general-syntax-rules-for-inf-files",
		},
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to read the INF file.

## Things you can try:
- Check the file permissions:
~~~
$ ls -l path/to/driver.inf
~~~
- Copy the driver package to a directory you own and retry`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file exists but could not be used.

## Things you can try:
- Check the CUE syntax of your config file
- Show where the configuration is read from:
~~~
$ getdriverfiles config path
~~~
- Recreate a default configuration:
~~~
$ getdriverfiles config init
~~~

## Example configuration:
~~~cue
architectures: ["amd64", "arm64"]
output: {
	format: "text"
	path_style: "inf"
}
~~~`,
	}

	invalidOptionIssue = &Issue{
		id: InvalidOptionId,
		mdMsg: `
# Invalid option value!

One of the flags or configuration values is not recognized.

## Accepted values:
- **--arch**: x86, ia64, amd64, arm, arm64
- **--format**: text, json, toml, yaml
- **--path-style**: inf, native`,
	}

	outputWriteFailedIssue = &Issue{
		id: OutputWriteFailedId,
		mdMsg: `
# Failed to write the listing!

The resolved file names could not be written to standard output.

## Things you can try:
- Check that the destination of a redirect has free space
- Check that the reading end of a pipe is still running`,
	}

	issues = map[Id]*Issue{
		infFileNotFoundIssue.Id():    infFileNotFoundIssue,
		missingInfArgumentIssue.Id(): missingInfArgumentIssue,
		infParseErrorIssue.Id():      infParseErrorIssue,
		permissionDeniedIssue.Id():   permissionDeniedIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		invalidOptionIssue.Id():      invalidOptionIssue,
		outputWriteFailedIssue.Id():  outputWriteFailedIssue,
	}
)

func Get(id Id) *Issue {
	return issues[id]
}
