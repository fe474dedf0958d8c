// Package registry reads the UI component registry.
//
// Components follow the "copy-paste ownership" model: they are fetched into
// the project as source files the developer owns. The actual fetching is
// delegated to an external installer tool; this package only consumes the
// registry's manifest for listing, dependency display, and install status.
//
// # Registry Manifest
//
// The registry serves a manifest.json file:
//
//	{
//	  "manifestVersion": 1,
//	  "version": "1.0.0",
//	  "components": {
//	    "button": {
//	      "files": ["button.tsx"],
//	      "dependsOn": ["utils"]
//	    }
//	  }
//	}
package registry
