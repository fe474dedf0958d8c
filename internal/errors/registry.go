package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// CLI Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryCLI,
		Message:  "Invalid project name",
		Detail:   "Project names must not contain spaces or path separators and must not start with a digit.",
		DocURL:   "https://stencil.dev/docs/errors/E100",
	},
	"E101": {
		Category: CategoryCLI,
		Message:  "Project directory already exists",
		Detail:   "A directory with this name already exists.",
		DocURL:   "https://stencil.dev/docs/errors/E101",
	},
	"E102": {
		Category: CategoryCLI,
		Message:  "Missing component name",
		Detail:   "The add command requires the name of the component to install.",
		DocURL:   "https://stencil.dev/docs/errors/E102",
	},
	"E103": {
		Category: CategoryCLI,
		Message:  "Installer tool not found",
		Detail:   "The external component installer could not be started.",
		DocURL:   "https://stencil.dev/docs/errors/E103",
	},
	"E105": {
		Category: CategoryCLI,
		Message:  "Invalid template",
		Detail:   "The specified project template doesn't exist.",
		DocURL:   "https://stencil.dev/docs/errors/E105",
	},
	"E106": {
		Category: CategoryCLI,
		Message:  "Script failed",
		Detail:   "The package manager script exited with a non-zero status.",
		DocURL:   "https://stencil.dev/docs/errors/E106",
	},
	"E107": {
		Category: CategoryCLI,
		Message:  "Package manager not found",
		Detail:   "The configured package manager is not installed or not in PATH.",
		DocURL:   "https://stencil.dev/docs/errors/E107",
	},
	"E108": {
		Category: CategoryCLI,
		Message:  "Environment check failed",
		Detail:   "One or more tools stencil relies on are missing.",
		DocURL:   "https://stencil.dev/docs/errors/E108",
	},

	// ============================================
	// Config Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Configuration error",
		Detail:   "stencil.json could not be read or written.",
		DocURL:   "https://stencil.dev/docs/errors/E120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Not a stencil project",
		Detail:   "The current directory is not a stencil project. Run this command from a directory with stencil.json.",
		DocURL:   "https://stencil.dev/docs/errors/E121",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A value in stencil.json is out of range or malformed.",
		DocURL:   "https://stencil.dev/docs/errors/E122",
	},

	// ============================================
	// Registry Errors (E140-E159)
	// ============================================

	"E140": {
		Category: CategoryRegistry,
		Message:  "Component not found",
		Detail:   "The requested component is not listed in the registry.",
		DocURL:   "https://stencil.dev/docs/errors/E140",
	},
	"E141": {
		Category: CategoryRegistry,
		Message:  "Registry unavailable",
		Detail:   "Unable to connect to the component registry.",
		DocURL:   "https://stencil.dev/docs/errors/E141",
	},

	// ============================================
	// Deploy Errors (E160-E179)
	// ============================================

	"E160": {
		Category: CategoryDeploy,
		Message:  "Deploy failed",
		Detail:   "Uploading the build output to the remote bucket failed.",
		DocURL:   "https://stencil.dev/docs/errors/E160",
	},
	"E161": {
		Category: CategoryDeploy,
		Message:  "Missing deploy target",
		Detail:   "No deploy bucket is configured in stencil.json.",
		DocURL:   "https://stencil.dev/docs/errors/E161",
	},
	"E162": {
		Category: CategoryDeploy,
		Message:  "Build output not found",
		Detail:   "The build output directory does not exist. Run 'stencil build' first.",
		DocURL:   "https://stencil.dev/docs/errors/E162",
	},
}

// Register adds a custom error template to the registry.
// This is primarily for testing and extensions.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}

// IsRegistered checks if an error code is registered.
func IsRegistered(code string) bool {
	_, ok := registry[code]
	return ok
}
