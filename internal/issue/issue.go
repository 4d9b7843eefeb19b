// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ConfigurationsParseErrorId Id = iota + 1
	ToolNotFoundId
	SettingsWriteFailedId
)

type MarkdownMsg string

type HttpLink string

// Issue is a catalog entry shown for failures the user must act on
// immediately. The Markdown body is rendered with glamour before display;
// everything else in makectl degrades to a logged warning instead.
type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // related documentation links
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

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	configurationsParseErrorIssue = &Issue{
		id: ConfigurationsParseErrorId,
		mdMsg: `
# The configurations file could not be parsed

The previously loaded configuration set is still in effect; nothing from the
edited file was applied.

## Things you can try:
- Check that the file is a JSON array of configuration records:
~~~json
[
  {"name": "Default"},
  {"name": "cross", "makeCommand": "gmake", "makeArgs": ["-j8"]}
]
~~~
- Remove the file entirely to fall back to settings-only resolution
  (a missing configurations file is a normal, supported state).`,
	}

	toolNotFoundIssue = &Issue{
		id: ToolNotFoundId,
		mdMsg: `
# No build tool configured

Neither the active configuration record nor the makePath setting names a
build tool, so the literal command "make" is assumed and must be resolvable
from the default search path.

## Things you can try:
- Set makePath in the settings file:
~~~toml
[make]
makePath = "/usr/bin/make"
~~~
- Or add a makeCommand to the active configuration record.`,
	}

	settingsWriteFailedIssue = &Issue{
		id: SettingsWriteFailedId,
		mdMsg: `
# The settings file could not be written

Your selection is active in memory but was not persisted; it will be lost
when makectl exits.

## Things you can try:
- Check that the .makectl directory exists and is writable
- Run this command to recreate the settings file:
~~~
$ makectl config init
~~~`,
	}

	issuesById = map[Id]*Issue{
		ConfigurationsParseErrorId: configurationsParseErrorIssue,
		ToolNotFoundId:             toolNotFoundIssue,
		SettingsWriteFailedId:      settingsWriteFailedIssue,
	}
)

// Get returns the catalog entry for id, or nil when the id is unknown.
func Get(id Id) *Issue {
	return issuesById[id]
}

// Ids returns the known issue ids in ascending order.
func Ids() []Id {
	ids := maps.Keys(issuesById)
	slices.Sort(ids)
	return ids
}
