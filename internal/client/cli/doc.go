// Package cli provides the interactive CRM command-line client.
//
// It wires configuration, the credential store, the API client, the session
// manager and an interactive REPL that hosts the application views. On start
// the stored session is restored in the background while a loading view is
// shown; every navigation and every session change is then re-admitted by
// the access package before a view renders.
//
// Commands:
//   - Navigation: dashboard, contacts, contact <id>, tasks, pipelines, team,
//     profile, go <path>, back
//   - Session: login, register, logout
//   - Contact detail: score, suggest, edit, delete, addpolicy
//   - Lists: newcontact, newtask, complete <id>, deltask <id>
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
