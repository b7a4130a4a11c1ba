package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/djboot-dev/djboot/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌┬┐ ┬┌┐ ┌─┐┌─┐┌┬┐
   │││ │├┴┐│ ││ │ │
  ─┴┘└┘┘└─┘└─┘└─┘ ┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "djboot",
		Short: "Install and run the Django boilerplate",
		Long: `djboot materializes a production-ready Django project from the
boilerplate, tailored to the features you pick.

Features:

  • Swagger API docs (drf-yasg)
  • CORS headers
  • Django REST Framework
  • Unfold admin with a custom accounts app
  • Poetry-managed environment, set up for you
  • Development proxy with hot reload`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		installCmd(),
		devCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

// printBanner prints the djboot ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
