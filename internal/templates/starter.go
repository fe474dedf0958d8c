package templates

// defaultTemplate is the full starter layout: pages, components, hooks, and
// the server-side service/repository scaffold, each with a short guide for
// what belongs there.
func defaultTemplate() *Template {
	t := minimalTemplate()
	t.Name = "default"
	t.Description = "Complete starter with the conventional folder layout"

	t.Files["src/pages/README.md"] = `# Pages

Each file in this folder is a page of your application. Keep pages thin:
compose components from ` + "`src/components`" + ` and call into the server layer for
data.
`

	t.Files["src/components/README.md"] = `# Components

Shared presentational components live here. Components installed with
` + "`stencil add <name>`" + ` are placed under ` + "`ui/`" + ` — you own that code and can
edit it freely.
`

	t.Files["src/components/ui/.gitkeep"] = ""

	t.Files["src/hooks/README.md"] = `# Hooks

Reusable stateful logic. Name files after the hook they export
(e.g. ` + "`use-media-query`" + `).
`

	t.Files["src/server/services/README.md"] = `# Services

Business logic lives here. A service orchestrates repositories and returns
plain data to pages. Keep transport concerns (HTTP, serialization) out of
this layer.
`

	t.Files["src/server/repositories/README.md"] = `# Repositories

Data access lives here. A repository wraps one data source (database table,
external API) behind a small interface the services consume.
`

	return t
}

// minimalTemplate contains just enough to run dev/build/add.
func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "Just the essentials",
		Files: map[string]string{
			"stencil.json": `{
  // See https://stencil.dev/docs/config for all options.
  "name": "{{.ProjectName}}",
  "description": "{{.Description}}",
  "packageManager": "{{.PackageManager}}"
}
`,

			"package.json": `{
  "name": "{{.ProjectName}}",
  "description": "{{.Description}}",
  "private": true,
  "scripts": {
    "dev": "echo \"wire your framework's dev server here\" && exit 1",
    "build": "echo \"wire your framework's build here\" && exit 1"
  }
}
`,

			"README.md": `# {{.ProjectName}}

{{.Description}}

## Getting started

    stencil dev        # start the development server
    stencil add button # install a UI component
    stencil build      # build for production
    stencil preview    # serve the build output locally
`,

			"public/index.html": `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>{{.ProjectName}}</title>
  </head>
  <body>
    <main>
      <h1>{{.ProjectName}}</h1>
      <p>{{.Description}}</p>
    </main>
  </body>
</html>
`,

			".gitignore": `node_modules/
dist/
.stencil/
*.log
`,
		},
	}
}
