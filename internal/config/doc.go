// Package config provides configuration parsing for stencil projects.
//
// The configuration is stored in stencil.json at the project root. The file
// may contain // and /* */ comments, matching how the surrounding ecosystem
// treats devcontainer.json and tsconfig.json.
//
// # Configuration File Structure
//
//	{
//	  "name": "my-app",
//	  "packageManager": "npm",
//	  "paths": {
//	    "pages": "src/pages",
//	    "ui": "src/components/ui"
//	  },
//	  "installer": {
//	    "command": ["npx", "shadcn@latest", "add"],
//	    "registry": "https://stencil.dev/registry.json"
//	  },
//	  "build": { "output": "dist" },
//	  "preview": { "port": 4173, "host": "localhost" },
//	  "deploy": { "bucket": "my-app-site", "prefix": "www/" }
//	}
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Output:", cfg.OutputPath())
package config
