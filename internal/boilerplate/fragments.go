package boilerplate

import (
	"strings"

	"github.com/djboot-dev/djboot/internal/features"
)

// Fragment is one piece of a rendered configuration module. A fragment with
// an owning feature is included only when that feature is enabled; a fragment
// with an empty Feature is always included.
type Fragment struct {
	// Feature is the owning feature name, or "" for unconditional text.
	Feature string

	// Text is the exact text contributed to the rendered module.
	Text string
}

// Template is an ordered list of fragments rendered into one file of the
// destination tree.
type Template struct {
	// Name identifies the template.
	Name string

	// DestPath is the file the rendered text is written to, relative to the
	// destination root.
	DestPath string

	// Fragments are joined in order to produce the rendered text.
	Fragments []Fragment
}

// Render produces the template text for the given resolved flags. Fragments
// of disabled features are dropped; everything else is emitted byte for byte.
func (t *Template) Render(flags features.Flags) string {
	var b strings.Builder
	for _, frag := range t.Fragments {
		if frag.Feature != "" && !flags.Enabled(frag.Feature) {
			continue
		}
		b.WriteString(frag.Text)
	}
	return b.String()
}

// URLsTemplate returns the URL-routing module template. Each routed feature
// contributes exactly one include line; with every routed feature disabled
// the list body is empty, which is still a valid Python list literal.
func URLsTemplate() *Template {
	return &Template{
		Name:     "urls",
		DestPath: "src/config/web/urls.py",
		Fragments: []Fragment{
			{Text: "\nfrom django.urls import path, include\n\nurlpatterns = [\n"},
			{Feature: "unfold", Text: "    path('', include('src.apps.accounts.urls')),\n"},
			{Feature: "docs", Text: "    path('', include('src.apps.docs.urls')),\n"},
			{Text: "]\n"},
		},
	}
}

// SettingsTemplate returns the base settings module template. The docs and
// unfold features each contribute one INSTALLED_APPS entry; the rest of the
// module is fixed.
func SettingsTemplate() *Template {
	return &Template{
		Name:     "settings",
		DestPath: "src/config/settings/base.py",
		Fragments: []Fragment{
			{Text: `
from pathlib import Path
from decouple import config, Csv

APPLICATION = "Simple Django Boilerplate"
DESCRIPTION = "Boilerplate for Django projects"
VERSION = "0.0.1"

BASE_DIR = Path(__file__).resolve().parent.parent.parent.parent
BASE_URL = config("BASE_URL", cast=str, default="http://localhost:8000")
SECRET_KEY = config("SECRET_KEY", cast=str)
DEBUG = config("DEBUG", cast=bool, default=False)
ALLOWED_HOSTS = config("ALLOWED_HOSTS", cast=Csv(), default=["*"])

INSTALLED_APPS = [
    "modeltranslation",
    "django.contrib.admin",
    "django.contrib.auth",
    "django.contrib.contenttypes",
    "django.contrib.sessions",
    "django.contrib.messages",
    "django.contrib.staticfiles",
    "django_filters",
`},
			{Feature: "docs", Text: "    'src.apps.docs',\n"},
			{Feature: "unfold", Text: "    'src.apps.accounts',\n"},
			{Text: `]

MIDDLEWARE = [
    "django.middleware.security.SecurityMiddleware",
    "django.contrib.sessions.middleware.SessionMiddleware",
    "django.middleware.common.CommonMiddleware",
    "django.middleware.csrf.CsrfViewMiddleware",
    "django.contrib.auth.middleware.AuthenticationMiddleware",
    "django.contrib.messages.middleware.MessageMiddleware",
    "django.middleware.clickjacking.XFrameOptionsMiddleware",
]

ROOT_URLCONF = "src.config.web.urls"

TEMPLATES = [
    {
        "BACKEND": "django.template.backends.django.DjangoTemplates",
        "DIRS": [BASE_DIR / "templates"],
        "APP_DIRS": True,
        "OPTIONS": {
            "context_processors": [
                "django.template.context_processors.debug",
                "django.template.context_processors.request",
                "django.contrib.auth.context_processors.auth",
                "django.contrib.messages.context_processors.messages",
            ],
        },
    },
]

WSGI_APPLICATION = "src.config.web.wsgi.application"
ASGI_APPLICATION = "src.config.web.asgi.application"
STATIC_URL = config("STATIC_URL", default="static/")
STATIC_ROOT = config("STATIC_ROOT", default="static/")
DEFAULT_AUTO_FIELD = "django.db.models.BigAutoField"
`},
		},
	}
}

// Templates returns the two rewritten modules in the order they are written.
func Templates() []*Template {
	return []*Template{SettingsTemplate(), URLsTemplate()}
}
