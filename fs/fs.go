// Package appfs embeds the static assets shipped with the binaries: datasets, migrations and templates.
package appfs

import "embed"

//go:embed data migrations templates
var FS embed.FS
