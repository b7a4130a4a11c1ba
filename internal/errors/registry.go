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
	// Config Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryConfig,
		Message:  "Destination folder is not empty",
		Detail:   "The installer only writes into an empty destination. Nothing has been copied.",
		DocURL:   "https://djboot.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryConfig,
		Message:  "Invalid destination path",
		Detail:   "The destination path could not be created or resolved to an absolute path.",
		DocURL:   "https://djboot.dev/docs/errors/E002",
	},
	"E003": {
		Category: CategoryConfig,
		Message:  "Invalid project configuration",
		Detail:   "The djboot.json file could not be parsed.",
		DocURL:   "https://djboot.dev/docs/errors/E003",
	},
	"E004": {
		Category: CategoryConfig,
		Message:  "Invalid feature manifest",
		Detail:   "The feature manifest could not be parsed, or a path is claimed by more than one feature.",
		DocURL:   "https://djboot.dev/docs/errors/E004",
	},

	// ============================================
	// Source Errors (E020-E039)
	// ============================================

	"E020": {
		Category: CategorySource,
		Message:  "Boilerplate source not found",
		Detail:   "The source directory does not exist or does not look like a boilerplate tree.",
		DocURL:   "https://djboot.dev/docs/errors/E020",
	},
	"E021": {
		Category: CategorySource,
		Message:  "Remote boilerplate download failed",
		Detail:   "The boilerplate archive could not be fetched from the remote bucket.",
		DocURL:   "https://djboot.dev/docs/errors/E021",
	},
	"E022": {
		Category: CategorySource,
		Message:  "Boilerplate archive extraction failed",
		Detail:   "The downloaded archive is corrupt or contains unsafe paths.",
		DocURL:   "https://djboot.dev/docs/errors/E022",
	},

	// ============================================
	// Install Errors (E040-E059)
	// ============================================

	"E040": {
		Category: CategoryInstall,
		Message:  "Copying the boilerplate failed",
		Detail:   "The source tree could not be copied into the destination.",
		DocURL:   "https://djboot.dev/docs/errors/E040",
	},
	"E041": {
		Category: CategoryInstall,
		Message:  "Writing a rendered template failed",
		Detail:   "The settings or URL module could not be written over its destination path.",
		DocURL:   "https://djboot.dev/docs/errors/E041",
	},
	"E042": {
		Category: CategoryInstall,
		Message:  "Environment file setup failed",
		Detail:   "The .env.sample file is missing from the boilerplate, or .env could not be written.",
		DocURL:   "https://djboot.dev/docs/errors/E042",
	},

	// ============================================
	// Cleanup Errors (E060-E069)
	// ============================================

	"E060": {
		Category: CategoryCleanup,
		Message:  "Removing a feature-gated path failed",
		Detail:   "A path scheduled for removal exists but could not be deleted. The destination is left partially materialized; remaining cleanup was aborted.",
		DocURL:   "https://djboot.dev/docs/errors/E060",
	},

	// ============================================
	// Process Errors (E070-E089)
	// ============================================

	"E070": {
		Category: CategoryProcess,
		Message:  "Poetry is not available",
		Detail:   "Poetry was not found on PATH and installing it via pip failed.",
		DocURL:   "https://djboot.dev/docs/errors/E070",
	},
	"E071": {
		Category: CategoryProcess,
		Message:  "Virtual environment creation failed",
		Detail:   "Running 'python -m venv .venv' in the destination failed.",
		DocURL:   "https://djboot.dev/docs/errors/E071",
	},
	"E072": {
		Category: CategoryProcess,
		Message:  "Dependency installation failed",
		Detail:   "Running 'poetry install' in the destination failed.",
		DocURL:   "https://djboot.dev/docs/errors/E072",
	},
	"E073": {
		Category: CategoryProcess,
		Message:  "Code formatting failed",
		Detail:   "Running 'poetry run black .' in the destination failed.",
		DocURL:   "https://djboot.dev/docs/errors/E073",
	},
	"E074": {
		Category: CategoryProcess,
		Message:  "Development server process failed",
		Detail:   "The Django development server exited with an error.",
		DocURL:   "https://djboot.dev/docs/errors/E074",
	},

	// ============================================
	// Dev Proxy Errors (E090-E099)
	// ============================================

	"E090": {
		Category: CategoryDev,
		Message:  "Development proxy failed to start",
		Detail:   "The hot-reload proxy could not bind its address or crashed on startup.",
		DocURL:   "https://djboot.dev/docs/errors/E090",
	},
	"E091": {
		Category: CategoryDev,
		Message:  "Not a djboot project",
		Detail:   "No manage.py was found in the project directory.",
		DocURL:   "https://djboot.dev/docs/errors/E091",
	},
}

// Lookup returns the registered template for a code, if any.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
