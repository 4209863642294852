package main

import (
	"vercel-deploy/cmd" // CLI commands and execution logic
)

// main is the program entry point. It delegates to cmd.Execute().
//
// vercel-deploy publishes a frontend to Vercel in one idempotent run:
//   - ensures the project exists (created with the configured framework preset when missing)
//   - binds the apex and www domains to the project when they are not bound yet
//   - reports each domain's DNS configuration status; failures here are only logged
//   - runs `vercel --prod` from the frontend directory (or an extracted archive) and
//     scrapes the deployment URL from the CLI output
//   - aliases both domains to that URL with `vercel alias set`
//
// Configuration comes from the environment (VERCEL_TOKEN is mandatory), an optional
// .env or YAML file, and defaults. Any failure stops the run and exits with status 1.
func main() {
	cmd.Execute()
}
